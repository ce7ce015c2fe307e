package gateway

import "strings"

// bearerToken はinboundのAuthorizationヘッダーからBearerトークンを取り出す。
// `Bearer <token>` 形式でない場合はfalseを返す。トークンのデコードや
// 署名・有効期限の検査は一切行わない。それはIdentityバックエンドの責務。
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
