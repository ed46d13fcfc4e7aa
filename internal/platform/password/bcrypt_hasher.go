// Package password はbcryptによるパスワードハッシュ化を提供します。
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher はbcryptでパスワードをハッシュ化・検証します。
// bcryptはハッシュごとにランダムなソルトを生成し、ハッシュ文字列に埋め込みます。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher は指定コストのBcryptHasherを生成します。
// 範囲外のコストが指定された場合は bcrypt.DefaultCost を使用します。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash はパスワードをハッシュ化します。
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify はパスワードがハッシュと一致するかを検証します。
// 比較は bcrypt 内部で定数時間で行われます。
// 不一致の場合は (false, nil)、ハッシュが不正な場合はエラーを返します。
func (h *BcryptHasher) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
