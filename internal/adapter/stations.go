package adapter

import (
	"net/http"
	"net/url"

	"github.com/railhub/gateway/internal/registry"
	"github.com/railhub/gateway/pkg/httpclient"
)

// Station はStationsバックエンドが返す駅表現。
// クライアントには直接公開されず、路線作成時の駅有効性検査にのみ使われる。
type Station struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// GetStation は駅1件取得の送信内容を組み立てる。
func GetStation(id string) (Call, error) {
	if err := requireID("stationId", id); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceStations,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/stations/" + url.PathEscape(id),
		},
	}, nil
}
