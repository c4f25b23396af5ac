package crypto

import "github.com/weisyn/mazegate/pkg/types"

// StarkSignature Stark 曲线 ECDSA 签名 (r, s)
type StarkSignature struct {
	R types.Felt
	S types.Felt
}

// Felts 返回交易 signature 字段使用的 [r, s]
func (s StarkSignature) Felts() []types.Felt {
	return []types.Felt{s.R, s.S}
}

// SignatureManager 定义 Stark 曲线签名相关接口
//
// 私钥与消息哈希均以字段元素表示；消息哈希必须小于 2^251。
type SignatureManager interface {
	// PublicKey 由私钥推导公钥 x 坐标
	PublicKey(privateKey types.Felt) (types.Felt, error)

	// Sign 对消息哈希签名
	Sign(msgHash, privateKey types.Felt) (StarkSignature, error)

	// Verify 使用公钥 x 坐标验证签名，y 坐标的两个候选值任一通过即视为有效
	Verify(msgHash types.Felt, sig StarkSignature, publicKey types.Felt) bool
}
