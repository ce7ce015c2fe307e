package adapter

import (
	"net/http"
	"net/url"

	"github.com/railhub/gateway/internal/registry"
	"github.com/railhub/gateway/pkg/httpclient"
)

// RoutePayload は路線の作成・更新でゲートウェイが受け取るボディ。
type RoutePayload struct {
	// Name は路線名。
	Name string `json:"name" validate:"required"`
	// OriginStationID は出発駅ID。
	OriginStationID string `json:"originStationId" validate:"required"`
	// DestinationStationID は到着駅ID。出発駅と同一は許可しない。
	DestinationStationID string `json:"destinationStationId" validate:"required,nefield=OriginStationID"`
	// DistanceKm は営業距離（km）。正の値のみ許可する。
	DistanceKm float64 `json:"distanceKm" validate:"gt=0"`
}

// routeBody はRoutesバックエンドが期待するsnake_caseのボディ。
type routeBody struct {
	Name                 string  `json:"name"`
	OriginStationID      string  `json:"origin_station_id"`
	DestinationStationID string  `json:"destination_station_id"`
	DistanceKm           float64 `json:"distance_km"`
}

// Route はRoutesバックエンドが返す路線表現。
// フィールド名はバックエンドの規約のまま、変換せずにクライアントへ返す。
type Route struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	OriginStationID      string  `json:"origin_station_id"`
	DestinationStationID string  `json:"destination_station_id"`
	DistanceKm           float64 `json:"distance_km"`
}

// ListRoutes は路線一覧取得の送信内容を組み立てる。
func ListRoutes() Call {
	return Call{
		Service: registry.ServiceRoutes,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/routes",
		},
	}
}

// GetRoute は路線1件取得の送信内容を組み立てる。
func GetRoute(id string) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceRoutes,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/routes/" + url.PathEscape(id),
		},
	}, nil
}

// CreateRoute は路線作成の送信内容を組み立てる。
// 出発駅・到着駅の有効性検査はゲートウェイが別途Stationsバックエンドに
// 問い合わせる（stations.goのGetStationを参照）。
func CreateRoute(p RoutePayload) (Call, error) {
	if err := checkStruct(p); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceRoutes,
		Request: httpclient.Request{
			Method: http.MethodPost,
			Path:   "/routes",
			Body:   toRouteBody(p),
		},
	}, nil
}

// UpdateRoute は路線更新の送信内容を組み立てる。
func UpdateRoute(id string, p RoutePayload) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	if err := checkStruct(p); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceRoutes,
		Request: httpclient.Request{
			Method: http.MethodPut,
			Path:   "/routes/" + url.PathEscape(id),
			Body:   toRouteBody(p),
		},
	}, nil
}

// DeleteRoute は路線削除の送信内容を組み立てる。
func DeleteRoute(id string) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceRoutes,
		Request: httpclient.Request{
			Method: http.MethodDelete,
			Path:   "/routes/" + url.PathEscape(id),
		},
	}, nil
}

// toRouteBody はゲートウェイのフィールド名をバックエンドのsnake_caseへ写す。
func toRouteBody(p RoutePayload) routeBody {
	return routeBody{
		Name:                 p.Name,
		OriginStationID:      p.OriginStationID,
		DestinationStationID: p.DestinationStationID,
		DistanceKm:           p.DistanceKm,
	}
}
