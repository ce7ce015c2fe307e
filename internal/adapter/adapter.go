package adapter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/railhub/gateway/pkg/httpclient"
)

// Call はアダプタが解決した1回分の送信内容。
// サービス名・リクエスト・認証要否をまとめてディスパッチ層に渡す。
type Call struct {
	// Service は送信先サービス名（registryパッケージの定数）。
	Service string
	// Request は構築済みの送信リクエスト。
	Request httpclient.Request
	// RequiresAuth はBearerトークンの添付が必須かどうか。
	RequiresAuth bool
}

// ValidationError は送信前のローカル検査に失敗したことを表すエラー。
// このエラーが返った場合、ネットワーク呼び出しは一切行われていない。
type ValidationError struct {
	// Msg は利用者向けの理由。
	Msg string
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return "入力が不正です: " + e.Msg
}

// dateLayout はバックエンドが期待する日付形式（yyyy-MM-dd）。
const dateLayout = "2006-01-02"

// validate はアダプタ共通のバリデータ。fecha（yyyy-MM-dd）ルールを追加登録する。
var validate = newValidator()

// newValidator はカスタムルールを登録したバリデータを生成する。
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("fechaルールの登録に失敗: %v", err))
	}
	return v
}

// checkStruct は構造体をバリデータにかけ、違反をValidationErrorに変換する。
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Msg: err.Error()}
	}

	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, reason(fe))
	}
	return &ValidationError{Msg: strings.Join(reasons, "、")}
}

// reason は1件のフィールド違反を利用者向けの文言にする。
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s は必須です", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s は {%s} のいずれかを指定してください", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s は %s より大きい値を指定してください", fe.Field(), fe.Param())
	case "fecha":
		return fmt.Sprintf("%s は yyyy-MM-dd 形式で指定してください", fe.Field())
	case "nefield":
		return fmt.Sprintf("%s は %s と異なる値を指定してください", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s はメールアドレス形式で指定してください", fe.Field())
	default:
		return fmt.Sprintf("%s が制約 %s を満たしていません", fe.Field(), fe.Tag())
	}
}

// requireID はパスパラメータのIDが空でないことを確認する。
func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Msg: name + " は必須です"}
	}
	return nil
}
