package types

import "fmt"

// Credentials 单次调用借用的节点地址与账户凭据
// 调用方持有；客户端不缓存、不持久化
type Credentials struct {
	NodeURL       string // 节点 JSON-RPC 地址
	SenderAddress string // 发送方账户地址（十六进制）
	PrivateKey    string // 私钥（十六进制）
}

// String 打印时隐藏私钥
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{NodeURL:%s SenderAddress:%s PrivateKey:<redacted>}", c.NodeURL, c.SenderAddress)
}
