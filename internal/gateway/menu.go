package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// MenuItem is a store's catalog entry.
type MenuItem struct {
	MenuNo   int     `json:"menuNo"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageurl"`
}

// DailyMenuItem is a catalog entry put on sale for a specific day, with a
// discounted price and a remaining quantity.
type DailyMenuItem struct {
	DailyMenuNo     int     `json:"dailymenuNo"`
	MenuName        string  `json:"menuName"`
	Price           float64 `json:"menuPrice"`
	DiscountedPrice float64 `json:"menuDiscountedPrice"`
	Quantity        int     `json:"menuQty"`
	ImageURL        string  `json:"menuImageUrl"`
}

// DailyMenuUpdate adjusts the sale price and quantity of one daily entry.
type DailyMenuUpdate struct {
	DailyMenuNo int     `json:"dailymenuNo"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"qty"`
}

// MenuDataAccess wraps the backend catalog and daily-menu endpoints.
type MenuDataAccess struct {
	client *Client
}

func NewMenuDataAccess(client *Client) *MenuDataAccess {
	return &MenuDataAccess{client: client}
}

type menuListResponse struct {
	envelope
	MenuList []MenuItem `json:"menuList"`
}

// List returns the store's catalog, newest entry first.
func (da *MenuDataAccess) List(ctx context.Context, token string) ([]MenuItem, error) {
	if da == nil || da.client == nil {
		return nil, errors.New("menu data access not configured")
	}

	var resp menuListResponse
	if _, err := da.client.do(ctx, http.MethodGet, "/api/menu/list", nil, token, nil, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope); err != nil {
		return nil, err
	}

	items := resp.MenuList
	sort.Slice(items, func(i, j int) bool { return items[i].MenuNo > items[j].MenuNo })
	return items, nil
}

type menuUpsertRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Add creates a catalog entry.
func (da *MenuDataAccess) Add(ctx context.Context, token, name string, price float64) error {
	if da == nil || da.client == nil {
		return errors.New("menu data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPost, "/api/menu/add.do", nil, token, menuUpsertRequest{Name: name, Price: price}, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// Update replaces the name and price of a catalog entry.
func (da *MenuDataAccess) Update(ctx context.Context, token string, menuNo int, name string, price float64) error {
	if da == nil || da.client == nil {
		return errors.New("menu data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/menu/update/"+strconv.Itoa(menuNo), nil, token, menuUpsertRequest{Name: name, Price: price}, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// Delete removes a catalog entry. The backend also drops it from any daily
// menu it appears on.
func (da *MenuDataAccess) Delete(ctx context.Context, token string, menuNo int) error {
	if da == nil || da.client == nil {
		return errors.New("menu data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodDelete, "/api/menu/delete/"+strconv.Itoa(menuNo), nil, token, nil, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// DailyList returns the entries on sale for the given day, yyyy-MM-dd.
// The backend answers with a bare array.
func (da *MenuDataAccess) DailyList(ctx context.Context, token, date string) ([]DailyMenuItem, error) {
	if da == nil || da.client == nil {
		return nil, errors.New("menu data access not configured")
	}

	query := url.Values{"date": []string{date}}
	var items []DailyMenuItem
	if _, err := da.client.do(ctx, http.MethodGet, "/api/menu/daily/storelist", query, token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type dailyMenuAddRequest struct {
	MenuNos []int `json:"menuNos"`
}

// DailyAdd puts the selected catalog entries on sale for today.
func (da *MenuDataAccess) DailyAdd(ctx context.Context, token string, menuNos []int) error {
	if da == nil || da.client == nil {
		return errors.New("menu data access not configured")
	}
	if len(menuNos) == 0 {
		return errors.New("no menus selected")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPost, "/api/menu/daily/add", nil, token, dailyMenuAddRequest{MenuNos: menuNos}, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// DailyUpdate adjusts sale price and quantity for the given daily entries.
func (da *MenuDataAccess) DailyUpdate(ctx context.Context, token string, updates []DailyMenuUpdate) error {
	if da == nil || da.client == nil {
		return errors.New("menu data access not configured")
	}
	if len(updates) == 0 {
		return errors.New("no updates provided")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/menu/daily/update", nil, token, updates, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// DailyDelete takes the given daily entries off sale.
func (da *MenuDataAccess) DailyDelete(ctx context.Context, token string, dailyMenuNos []int) error {
	if da == nil || da.client == nil {
		return errors.New("menu data access not configured")
	}
	if len(dailyMenuNos) == 0 {
		return errors.New("no entries selected")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodDelete, "/api/menu/daily/delete", nil, token, dailyMenuNos, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}
