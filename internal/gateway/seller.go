package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// StoreInfo is the seller profile as the backend reports it. The mixed key
// casing is the backend's, kept as-is so the console never remaps fields.
type StoreInfo struct {
	StoreID     string `json:"storeid"`
	StoreEmail  string `json:"storeemail"`
	StoreName   string `json:"storeName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	StartPickup string `json:"startPickup"`
	EndPickup   string `json:"endPickup"`
	ImageURL    string `json:"imageurl"`
}

// JoinRequest carries a new seller registration.
type JoinRequest struct {
	StoreID     string `json:"storeId"`
	StoreEmail  string `json:"storeEmail"`
	Password    string `json:"password"`
	StoreName   string `json:"storeName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	StartPickup string `json:"startPickup"`
	EndPickup   string `json:"endPickup"`
}

// SellerDataAccess wraps the backend account and store endpoints.
type SellerDataAccess struct {
	client *Client
}

func NewSellerDataAccess(client *Client) *SellerDataAccess {
	return &SellerDataAccess{client: client}
}

type loginRequest struct {
	StoreID  string `json:"storeId"`
	Password string `json:"password"`
}

type loginResponse struct {
	envelope
	Token string `json:"token"`
}

// Login exchanges store credentials for a backend bearer token. Rejected
// credentials come back as a KindBackend error carrying the backend message.
func (da *SellerDataAccess) Login(ctx context.Context, storeID, password string) (string, error) {
	if da == nil || da.client == nil {
		return "", errors.New("seller data access not configured")
	}

	var resp loginResponse
	if _, err := da.client.do(ctx, http.MethodPost, "/api/seller/login.do", nil, "", loginRequest{StoreID: storeID, Password: password}, &resp); err != nil {
		return "", err
	}
	if err := checkEnvelope(resp.envelope); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{Kind: KindDecode, Err: errors.New("login response missing token")}
	}
	return resp.Token, nil
}

// Join registers a new seller account.
func (da *SellerDataAccess) Join(ctx context.Context, req JoinRequest) error {
	if da == nil || da.client == nil {
		return errors.New("seller data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPost, "/api/seller/join.do", nil, "", req, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

type storeDetailResponse struct {
	envelope
	Result StoreInfo `json:"result"`
}

// StoreDetail returns the profile of the given store.
func (da *SellerDataAccess) StoreDetail(ctx context.Context, token, storeID string) (*StoreInfo, error) {
	if da == nil || da.client == nil {
		return nil, errors.New("seller data access not configured")
	}

	var resp storeDetailResponse
	if _, err := da.client.do(ctx, http.MethodGet, "/api/store/detail/"+url.PathEscape(storeID), nil, token, nil, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// UpdateProfile replaces the store profile.
func (da *SellerDataAccess) UpdateProfile(ctx context.Context, token string, info StoreInfo) error {
	if da == nil || da.client == nil {
		return errors.New("seller data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/seller/update.do", nil, token, info, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// UpdatePassword changes the account password. The backend takes both
// passwords as query parameters.
func (da *SellerDataAccess) UpdatePassword(ctx context.Context, token, currentPwd, newPwd string) error {
	if da == nil || da.client == nil {
		return errors.New("seller data access not configured")
	}

	query := url.Values{
		"currentPwd": []string{currentPwd},
		"newPwd":     []string{newPwd},
	}
	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/seller/updatepassword.do", query, token, nil, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// ResetPassword resets a forgotten password after verifying the store's
// registered email. No session is required.
func (da *SellerDataAccess) ResetPassword(ctx context.Context, storeID, storeEmail, newPwd string) error {
	if da == nil || da.client == nil {
		return errors.New("seller data access not configured")
	}

	query := url.Values{
		"storeId":    []string{storeID},
		"storeEmail": []string{storeEmail},
		"newPwd":     []string{newPwd},
	}
	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/seller/forgotpassword.do", query, "", nil, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// DeleteAccount deactivates the seller account.
func (da *SellerDataAccess) DeleteAccount(ctx context.Context, token string) error {
	if da == nil || da.client == nil {
		return errors.New("seller data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/seller/delete.do", nil, token, nil, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}
