// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignupReq は/auth/signupエンドポイントのリクエストボディを表します。
// パスワードの上限は文字数で検証し、バイト数（bcryptの72バイト制限）はユースケースで検証します。
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5,max=72"`
}

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
// 長さの検証は行わず、不一致はすべて認証失敗として扱います。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}
