// Package wallet provides the account context used to authorize and submit transactions.
package wallet

import (
	"fmt"

	"github.com/weisyn/mazegate/client/core/builder"
	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/mazegate/pkg/types"
)

// SignerType 签名器类型
type SignerType string

const (
	SignerTypePrivateKey SignerType = "private-key" // 进程内持有的私钥
	SignerTypeExternal   SignerType = "external"    // 外部签名器(预留)
)

// 确保StarkSigner实现了builder.Signer接口
var _ builder.Signer = (*StarkSigner)(nil)

// StarkSigner 私钥签名器
//
// 私钥只在构造时解析一次，不会出现在日志或 String() 输出中。
type StarkSigner struct {
	address    types.Felt
	privateKey types.Felt
	publicKey  types.Felt
	signatures cryptointf.SignatureManager
}

// NewStarkSigner 创建签名器并推导公钥
func NewStarkSigner(address, privateKey types.Felt, signatures cryptointf.SignatureManager) (*StarkSigner, error) {
	publicKey, err := signatures.PublicKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %v", types.ErrInvalidCredentialFormat, err)
	}

	return &StarkSigner{
		address:    address,
		privateKey: privateKey,
		publicKey:  publicKey,
		signatures: signatures,
	}, nil
}

// Address 账户地址
func (s *StarkSigner) Address() types.Felt {
	return s.address
}

// PublicKey 公钥 x 坐标
func (s *StarkSigner) PublicKey() types.Felt {
	return s.publicKey
}

// SignHash 签名交易哈希，返回 [r, s]
func (s *StarkSigner) SignHash(hash types.Felt) ([]types.Felt, error) {
	sig, err := s.signatures.Sign(hash, s.privateKey)
	if err != nil {
		return nil, err
	}
	return sig.Felts(), nil
}

// Type 返回签名器类型
func (s *StarkSigner) Type() SignerType {
	return SignerTypePrivateKey
}

// String 打印时隐藏私钥
func (s *StarkSigner) String() string {
	return fmt.Sprintf("StarkSigner{address: %s, publicKey: %s}", s.address, s.publicKey)
}
