// Package transporttest 提供测试用的 Starknet 节点替身
package transporttest

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/weisyn/mazegate/client/core/transport"
	"github.com/weisyn/mazegate/pkg/types"
)

// RPCFailure 预设的节点错误
type RPCFailure struct {
	Code    int
	Message string
	Data    interface{}
}

// FakeNode 基于 httptest 的 JSON-RPC 节点
//
// 按账户维护 nonce，提交成功后 nonce 加一；所有请求按到达顺序记录。
type FakeNode struct {
	Server *httptest.Server

	mu sync.Mutex

	chainID     types.Felt
	nonces      map[string]uint64
	callResults map[string][]types.Felt
	callFailure *RPCFailure
	overallFee  uint64

	submitFailure   *RPCFailure
	estimateFailure *RPCFailure
	// delay 每个请求在应答前的等待时间
	delay time.Duration
	// enforceNonce 为 true 时拒绝 nonce 不等于当前值的交易（错误码 52）
	enforceNonce bool

	methods   []string
	submitted []transport.BroadcastInvokeTxn
	estimated []transport.BroadcastInvokeTxn
}

// NewFakeNode 启动节点，测试结束时调用 Close
func NewFakeNode(chain types.ChainID) *FakeNode {
	n := &FakeNode{
		chainID:      chain.Felt(),
		nonces:       make(map[string]uint64),
		callResults:  make(map[string][]types.Felt),
		overallFee:   1000,
		enforceNonce: true,
	}
	n.Server = httptest.NewServer(http.HandlerFunc(n.serve))
	return n
}

// URL 节点地址
func (n *FakeNode) URL() string {
	return n.Server.URL
}

// Close 关闭节点
func (n *FakeNode) Close() {
	n.Server.Close()
}

// AddAccount 注册账户及其初始 nonce
func (n *FakeNode) AddAccount(address types.Felt, nonce uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nonces[address.String()] = nonce
}

// SetCallResult 设置某个选择器的只读调用结果
func (n *FakeNode) SetCallResult(selector types.Felt, result []types.Felt) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callResults[selector.String()] = result
}

// FailCalls 让所有只读调用返回指定错误
func (n *FakeNode) FailCalls(f *RPCFailure) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callFailure = f
}

// FailSubmissions 让所有提交返回指定错误
func (n *FakeNode) FailSubmissions(f *RPCFailure) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitFailure = f
}

// FailEstimates 让所有估费返回指定错误
func (n *FakeNode) FailEstimates(f *RPCFailure) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.estimateFailure = f
}

// SetOverallFee 设置估费结果
func (n *FakeNode) SetOverallFee(fee uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.overallFee = fee
}

// SetDelay 让每个请求延迟 d 后再应答，模拟慢节点
func (n *FakeNode) SetDelay(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delay = d
}

// Submitted 返回已接受的交易副本
func (n *FakeNode) Submitted() []transport.BroadcastInvokeTxn {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]transport.BroadcastInvokeTxn(nil), n.submitted...)
}

// Estimated 返回估费请求中的交易副本
func (n *FakeNode) Estimated() []transport.BroadcastInvokeTxn {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]transport.BroadcastInvokeTxn(nil), n.estimated...)
}

// Methods 返回按顺序收到的方法名
func (n *FakeNode) Methods() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.methods...)
}

type request struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (n *FakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	delay := n.delay
	n.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	n.mu.Lock()
	n.methods = append(n.methods, req.Method)
	result, failure := n.dispatch(req)
	n.mu.Unlock()

	resp := response{JSONRPC: "2.0", ID: req.ID}
	if failure != nil {
		resp.Error = &rpcError{Code: failure.Code, Message: failure.Message, Data: failure.Data}
	} else {
		resp.Result = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// dispatch 在持锁状态下处理单个请求
func (n *FakeNode) dispatch(req request) (interface{}, *RPCFailure) {
	switch req.Method {
	case "starknet_chainId":
		return n.chainID, nil

	case "starknet_getNonce":
		var address types.Felt
		if len(req.Params) != 2 || json.Unmarshal(req.Params[1], &address) != nil {
			return nil, &RPCFailure{Code: -32602, Message: "Invalid params"}
		}
		nonce, ok := n.nonces[address.String()]
		if !ok {
			return nil, &RPCFailure{Code: transport.CodeContractNotFound, Message: "Contract not found"}
		}
		return types.FeltFromUint64(nonce), nil

	case "starknet_call":
		if n.callFailure != nil {
			return nil, n.callFailure
		}
		var call transport.FunctionCall
		if len(req.Params) != 2 || json.Unmarshal(req.Params[0], &call) != nil {
			return nil, &RPCFailure{Code: -32602, Message: "Invalid params"}
		}
		result, ok := n.callResults[call.EntryPointSelector.String()]
		if !ok {
			return nil, &RPCFailure{Code: transport.CodeEntrypointNotFound, Message: "Requested entrypoint does not exist in the contract"}
		}
		return result, nil

	case "starknet_estimateFee":
		if n.estimateFailure != nil {
			return nil, n.estimateFailure
		}
		var txs []transport.BroadcastInvokeTxn
		if len(req.Params) != 3 || json.Unmarshal(req.Params[0], &txs) != nil {
			return nil, &RPCFailure{Code: -32602, Message: "Invalid params"}
		}
		n.estimated = append(n.estimated, txs...)
		estimates := make([]transport.FeeEstimate, len(txs))
		for i := range estimates {
			estimates[i] = transport.FeeEstimate{
				GasConsumed: types.FeltFromUint64(n.overallFee),
				GasPrice:    types.FeltFromUint64(1),
				OverallFee:  types.FeltFromUint64(n.overallFee),
				Unit:        "WEI",
			}
		}
		return estimates, nil

	case "starknet_addInvokeTransaction":
		if n.submitFailure != nil {
			return nil, n.submitFailure
		}
		var tx transport.BroadcastInvokeTxn
		if len(req.Params) != 1 || json.Unmarshal(req.Params[0], &tx) != nil {
			return nil, &RPCFailure{Code: -32602, Message: "Invalid params"}
		}
		key := tx.SenderAddress.String()
		current, ok := n.nonces[key]
		if !ok {
			return nil, &RPCFailure{Code: transport.CodeValidationFailure, Message: "Account validation failed", Data: "unknown account"}
		}
		if n.enforceNonce {
			if got, _ := tx.Nonce.Uint64(); got != current {
				return nil, &RPCFailure{Code: transport.CodeInvalidTxnNonce, Message: "Invalid transaction nonce",
					Data: fmt.Sprintf("expected %d, got %d", current, got)}
			}
		}
		n.nonces[key] = current + 1
		n.submitted = append(n.submitted, tx)
		hash := new(big.Int).SetUint64(uint64(len(n.submitted)))
		return transport.AddInvokeTransactionResult{TransactionHash: types.FeltFromBigInt(hash.Lsh(hash, 200))}, nil

	default:
		return nil, &RPCFailure{Code: -32601, Message: "Method not found"}
	}
}
