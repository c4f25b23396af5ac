// Package signature 提供 Stark 曲线上的 ECDSA 签名服务
package signature

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"

	cryptointf "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/mazegate/pkg/types"
)

// 确保SignatureService实现了cryptointf.SignatureManager接口
var _ cryptointf.SignatureManager = (*SignatureService)(nil)

// 错误定义
var (
	ErrInvalidPrivateKey = errors.New("无效的私钥")
	ErrInvalidHashRange  = errors.New("消息哈希超出 2^251 范围")
	ErrInvalidPublicKey  = errors.New("无效的公钥")
)

// maxSignatureAttempts 随机 k 不满足范围约束时的重试上限
const maxSignatureAttempts = 64

var (
	// bound 2^251，r、w 与消息哈希的上界
	bound = new(big.Int).Lsh(big.NewInt(1), 251)

	// curveBeta 曲线 y² = x³ + x + β 的常数项
	curveBeta = func() fp.Element {
		var e fp.Element
		if _, err := e.SetString("0x6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89"); err != nil {
			panic(err)
		}
		return e
	}()
)

// SignatureService 提供 Stark 曲线签名功能
//
// 🎯 **签名流程**：
// - 随机选取 k ∈ [1, n)，R = k·G，r = R.x
// - s = k⁻¹·(z + r·priv) mod n
// - 要求 r、s⁻¹ 均落在 [1, 2^251)，否则重新选取 k
type SignatureService struct {
	generator starkcurve.G1Jac
	order     *big.Int
	random    io.Reader
}

// NewSignatureService 创建新的签名服务
func NewSignatureService() *SignatureService {
	return NewSignatureServiceWithRand(rand.Reader)
}

// NewSignatureServiceWithRand 使用指定随机源创建签名服务
func NewSignatureServiceWithRand(random io.Reader) *SignatureService {
	g, _ := starkcurve.Generators()
	return &SignatureService{
		generator: g,
		order:     fr.Modulus(),
		random:    random,
	}
}

// PublicKey 由私钥推导公钥 x 坐标
func (ss *SignatureService) PublicKey(privateKey types.Felt) (types.Felt, error) {
	point, err := ss.publicPoint(privateKey)
	if err != nil {
		return types.Felt{}, err
	}
	return types.FeltFromElement(&point.X), nil
}

// Sign 对消息哈希签名
func (ss *SignatureService) Sign(msgHash, privateKey types.Felt) (cryptointf.StarkSignature, error) {
	z := msgHash.BigInt()
	if z.Cmp(bound) >= 0 {
		return cryptointf.StarkSignature{}, ErrInvalidHashRange
	}
	priv := privateKey.BigInt()
	if priv.Sign() == 0 || priv.Cmp(ss.order) >= 0 {
		return cryptointf.StarkSignature{}, ErrInvalidPrivateKey
	}

	upper := new(big.Int).Sub(ss.order, big.NewInt(1))
	for attempt := 0; attempt < maxSignatureAttempts; attempt++ {
		k, err := rand.Int(ss.random, upper)
		if err != nil {
			return cryptointf.StarkSignature{}, fmt.Errorf("生成随机数失败: %w", err)
		}
		k.Add(k, big.NewInt(1))

		r := ss.mulBaseX(k)
		if r.Sign() == 0 || r.Cmp(bound) >= 0 {
			continue
		}

		// s = k⁻¹ · (z + r·priv) mod n
		s := new(big.Int).Mul(r, priv)
		s.Add(s, z)
		s.Mul(s, new(big.Int).ModInverse(k, ss.order))
		s.Mod(s, ss.order)
		if s.Sign() == 0 {
			continue
		}

		w := new(big.Int).ModInverse(s, ss.order)
		if w == nil || w.Sign() == 0 || w.Cmp(bound) >= 0 {
			continue
		}

		return cryptointf.StarkSignature{
			R: types.FeltFromBigInt(r),
			S: types.FeltFromBigInt(s),
		}, nil
	}

	return cryptointf.StarkSignature{}, fmt.Errorf("签名失败：%d 次尝试均未得到合法的 (r, s)", maxSignatureAttempts)
}

// Verify 验证签名
//
// 公钥只携带 x 坐标，y 的两个候选值任一验证通过即可。
func (ss *SignatureService) Verify(msgHash types.Felt, sig cryptointf.StarkSignature, publicKey types.Felt) bool {
	z := msgHash.BigInt()
	r := sig.R.BigInt()
	s := sig.S.BigInt()

	if z.Cmp(bound) >= 0 {
		return false
	}
	if r.Sign() == 0 || r.Cmp(bound) >= 0 {
		return false
	}
	if s.Sign() == 0 || s.Cmp(ss.order) >= 0 {
		return false
	}
	w := new(big.Int).ModInverse(s, ss.order)
	if w == nil || w.Cmp(bound) >= 0 {
		return false
	}

	q, err := pointFromX(publicKey)
	if err != nil {
		return false
	}

	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, ss.order)
	u2 := new(big.Int).Mul(r, w)
	u2.Mod(u2, ss.order)

	for _, candidate := range []starkcurve.G1Affine{q, negate(q)} {
		if ss.combineX(u1, u2, &candidate).Cmp(r) == 0 {
			return true
		}
	}
	return false
}

// publicPoint 计算 priv·G
func (ss *SignatureService) publicPoint(privateKey types.Felt) (starkcurve.G1Affine, error) {
	priv := privateKey.BigInt()
	if priv.Sign() == 0 || priv.Cmp(ss.order) >= 0 {
		return starkcurve.G1Affine{}, ErrInvalidPrivateKey
	}

	var jac starkcurve.G1Jac
	jac.ScalarMultiplication(&ss.generator, priv)

	var point starkcurve.G1Affine
	point.FromJacobian(&jac)
	return point, nil
}

// mulBaseX 返回 (k·G).x
func (ss *SignatureService) mulBaseX(k *big.Int) *big.Int {
	var jac starkcurve.G1Jac
	jac.ScalarMultiplication(&ss.generator, k)

	var point starkcurve.G1Affine
	point.FromJacobian(&jac)
	return point.X.BigInt(new(big.Int))
}

// combineX 返回 (u1·G + u2·Q).x
func (ss *SignatureService) combineX(u1, u2 *big.Int, q *starkcurve.G1Affine) *big.Int {
	var left starkcurve.G1Jac
	left.ScalarMultiplication(&ss.generator, u1)

	var qJac, right starkcurve.G1Jac
	qJac.FromAffine(q)
	right.ScalarMultiplication(&qJac, u2)

	left.AddAssign(&right)

	var sum starkcurve.G1Affine
	sum.FromJacobian(&left)
	return sum.X.BigInt(new(big.Int))
}

// pointFromX 由 x 坐标恢复曲线点（取 Sqrt 返回的 y）
func pointFromX(x types.Felt) (starkcurve.G1Affine, error) {
	var rhs, x3 fp.Element
	xe := x.Impl()

	x3.Square(xe).Mul(&x3, xe)
	rhs.Add(&x3, xe).Add(&rhs, &curveBeta)

	var y fp.Element
	if y.Sqrt(&rhs) == nil {
		return starkcurve.G1Affine{}, ErrInvalidPublicKey
	}
	return starkcurve.G1Affine{X: *xe, Y: y}, nil
}

func negate(p starkcurve.G1Affine) starkcurve.G1Affine {
	var out starkcurve.G1Affine
	out.X = p.X
	out.Y.Neg(&p.Y)
	return out
}
