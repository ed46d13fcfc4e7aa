// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 5
	// maxPasswordLength はbcryptが扱える最大バイト数です。
	maxPasswordLength = 72
)

// ユーザーが存在しない場合のタイミング攻撃緩和用の平文
const dummyPassword = "timing-attack-mitigation"

var validate = validator.New()

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher はパスワードの一方向ハッシュ化と検証を定義します。
type PasswordHasher interface {
	// Hash は呼び出しごとに新しいソルトでパスワードをハッシュ化します。
	Hash(password string) (string, error)
	// Verify はパスワードがハッシュと一致するかを定数時間で検証します。
	Verify(hash, password string) (bool, error)
}

// TokenIssuer はセッショントークン発行のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザーに紐づく署名済みトークンを発行します。
	Issue(userID uint) (*entity.SessionToken, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users     UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	// 存在しないユーザーでも同じハッシュ方式で検証するためのダミーハッシュ
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		slog.Warn("failed to prepare dummy password hash", "error", err)
	}
	return &authUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

// validateCredentials はメールアドレスとパスワードの形式を検証します。
// 境界層でも検証されますが、ユースケース単体で呼ばれた場合に備えて再検証します。
// パスワードの最低文字数は登録時のみ適用し、ログイン時は空でないことだけを確認します。
func validateCredentials(email, password string, minLen int) error {
	fields := map[string]string{}
	check := func(field, value, tag string) {
		var verrs validator.ValidationErrors
		if err := validate.Var(value, tag); errors.As(err, &verrs) && len(verrs) > 0 {
			fields[field] = api.FieldMessage(field, verrs[0].Tag(), verrs[0].Param())
		}
	}
	check("email", email, "required,email")
	check("password", password, fmt.Sprintf("required,min=%d,max=%d", minLen, maxPasswordLength))
	// validatorのmaxは文字数で数えるため、マルチバイト文字を含む場合はバイト数でも確認する
	if _, invalid := fields["password"]; !invalid && len(password) > maxPasswordLength {
		fields["password"] = fmt.Sprintf("password must be shorter than or equal to %d bytes", maxPasswordLength)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// SignUp はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) SignUp(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password, minPasswordLength); err != nil {
		return err
	}

	// 重複チェック（最終的な一意性はストアの制約で保証される）
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrDuplicateCredential
	case !errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		// チェックと挿入の間に同じメールアドレスが登録された場合
		if errors.Is(err, ErrEmailAlreadyExists) {
			return ErrDuplicateCredential
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Login はユーザーを認証し、成功時に署名済みセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.SessionToken, error) {
	if err := validateCredentials(email, password, 1); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	passwordHash := u.dummyHash
	if user != nil {
		passwordHash = user.Password
	}

	// 常にパスワードを検証する
	ok, verifyErr := u.hasher.Verify(passwordHash, password)

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す
	if user == nil || !ok || verifyErr != nil {
		return nil, ErrInvalidCredential
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout はログアウトを処理します。
// トークンはステートレスなためサーバー側で無効化するものはなく、常に成功します。
// Cookieの削除はトランスポート層が行います。
func (u *authUsecase) Logout(ctx context.Context) error {
	return nil
}
