package registry

import (
	"fmt"
	"net/url"
	"strings"
)

// サービス名の定数。レジストリのキーとして使用する。
const (
	// ServiceIdentity は認証・ユーザー管理を担うIdentityサービス。
	ServiceIdentity = "identity"
	// ServiceRoutes は路線情報を管理するRoutesサービス。
	ServiceRoutes = "routes"
	// ServiceStations は駅情報を管理するStationsサービス。
	ServiceStations = "stations"
	// ServiceTickets は切符の発行・管理を担うTicketsサービス。
	ServiceTickets = "tickets"
)

// ConfigurationError はバックエンドアドレス設定の不備を表すエラー。
// 起動時に検出され、プロセスを停止させる。
type ConfigurationError struct {
	// Service は問題のあるサービス名。
	Service string
	// Reason はエラーの理由。
	Reason string
}

// Error はerrorインターフェースを実装する。
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("サービス %q の設定が不正: %s", e.Service, e.Reason)
}

// Registry はサービス名からベースURLへの不変なマッピング。
// Newで生成した後は変更されないため、複数のゴルーチンから同時に参照できる。
type Registry struct {
	// endpoints はサービス名からベースURL（末尾スラッシュなし）へのマップ。
	endpoints map[string]string
}

// requiredServices はレジストリに必須のサービス名一覧。
var requiredServices = []string{
	ServiceIdentity,
	ServiceRoutes,
	ServiceStations,
	ServiceTickets,
}

// New はサービス名→ベースアドレスのマップからレジストリを生成する。
// 必須サービスのアドレスが欠落している、またはURLとして不正な場合は
// ConfigurationErrorを返す。
func New(addresses map[string]string) (*Registry, error) {
	endpoints := make(map[string]string, len(requiredServices))
	for _, name := range requiredServices {
		addr, ok := addresses[name]
		if !ok || addr == "" {
			return nil, &ConfigurationError{Service: name, Reason: "ベースアドレスが設定されていません"}
		}

		u, err := url.Parse(addr)
		if err != nil {
			return nil, &ConfigurationError{Service: name, Reason: fmt.Sprintf("URLとして解釈できません: %v", err)}
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, &ConfigurationError{Service: name, Reason: fmt.Sprintf("http(s)スキームとホストが必要です: %q", addr)}
		}

		endpoints[name] = strings.TrimRight(u.String(), "/")
	}

	return &Registry{endpoints: endpoints}, nil
}

// Resolve はサービス名からベースURLを返す。
// 未知のサービス名はConfigurationErrorとして報告する。
func (r *Registry) Resolve(service string) (string, error) {
	base, ok := r.endpoints[service]
	if !ok {
		return "", &ConfigurationError{Service: service, Reason: "レジストリに登録されていません"}
	}
	return base, nil
}
