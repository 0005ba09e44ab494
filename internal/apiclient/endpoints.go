package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	const op = "apiclient.Register"
	body, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/api/auth/register", body: req})
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := c.decode(op, body, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	const op = "apiclient.Login"
	body, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/api/auth/login", body: req})
	if err != nil {
		return models.LoginResponse{}, err
	}
	var resp models.LoginResponse
	if err := c.decode(op, body, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	if resp.Token == "" || !resp.UserID.Valid() {
		return models.LoginResponse{}, &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "invalid login response"}
	}
	return resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	const op = "apiclient.Logout"
	_, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/api/auth/logout", auth: authRequired})
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	return c.getUser(ctx, "apiclient.CurrentUser", "/api/users/me")
}

func (c *Client) GetUser(ctx context.Context, id models.UserID) (models.User, error) {
	return c.getUser(ctx, "apiclient.GetUser", "/api/users/"+id.String())
}

func (c *Client) getUser(ctx context.Context, op, path string) (models.User, error) {
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: path, auth: authRequired})
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := c.decode(op, body, &user); err != nil {
		return models.User{}, err
	}
	if !user.ID.Valid() {
		return models.User{}, &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "user data not found"}
	}
	return user, nil
}

// ListWallets returns every wallet known to the service; the token is sent
// when one is held.
func (c *Client) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	const op = "apiclient.ListWallets"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/api/wallets", auth: authOptional})
	if err != nil {
		return nil, err
	}
	return c.decodeWallets(op, body)
}

func (c *Client) GetWallet(ctx context.Context, id models.WalletID) (models.Wallet, error) {
	const op = "apiclient.GetWallet"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/api/wallets/" + id.String(), auth: authRequired})
	if err != nil {
		return models.Wallet{}, err
	}
	return c.decodeWallet(op, body)
}

func (c *Client) WalletsByUser(ctx context.Context, userID models.UserID) ([]models.Wallet, error) {
	const op = "apiclient.WalletsByUser"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/api/wallets/user/" + userID.String(), auth: authRequired})
	if err != nil {
		return nil, err
	}
	return c.decodeWallets(op, body)
}

func (c *Client) CreateWallet(ctx context.Context, userID models.UserID) (models.Wallet, error) {
	const op = "apiclient.CreateWallet"
	body, err := c.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/api/wallets/" + userID.String(),
		body:   map[string]models.UserID{"userId": userID},
		auth:   authRequired,
	})
	if err != nil {
		return models.Wallet{}, err
	}
	return c.decodeWallet(op, body)
}

func (c *Client) decodeWallet(op string, body []byte) (models.Wallet, error) {
	var wallet models.Wallet
	if err := c.decode(op, body, &wallet); err != nil {
		return models.Wallet{}, err
	}
	if !wallet.ID.Valid() {
		return models.Wallet{}, &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "invalid wallet response format"}
	}
	return wallet, nil
}

// CreateTransaction submits a top-up or transfer. The returned transaction is
// zero when the service answers without a body.
func (c *Client) CreateTransaction(ctx context.Context, req models.TransactionRequest, requestID string) (models.Transaction, error) {
	const op = "apiclient.CreateTransaction"
	if err := req.Validate(); err != nil {
		return models.Transaction{}, fmt.Errorf("%s: %w", op, err)
	}
	body, err := c.do(ctx, call{
		op:        op,
		method:    http.MethodPost,
		path:      "/api/transactions",
		body:      req,
		auth:      authRequired,
		requestID: requestID,
	})
	if err != nil {
		return models.Transaction{}, err
	}
	payload, err := unwrap(body)
	if err != nil {
		return models.Transaction{}, withOp(op, err)
	}
	var tx models.Transaction
	if len(payload) == 0 || payload[0] != '{' {
		return tx, nil
	}
	if err := c.decode(op, payload, &tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

func (c *Client) ListTransactions(ctx context.Context, filter models.TransactionFilter) (models.TransactionPage, error) {
	const op = "apiclient.ListTransactions"
	if !filter.WalletID.Valid() {
		return models.TransactionPage{}, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}
	f := filter.WithDefaults()
	q := url.Values{}
	q.Set("walletId", f.WalletID.String())
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("size", strconv.Itoa(f.Size))
	q.Set("sortBy", f.SortBy)
	q.Set("order", f.Order)
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.TimeRange != "" {
		q.Set("timeRange", f.TimeRange)
	}

	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/api/transactions/filter", query: q, auth: authRequired})
	if err != nil {
		return models.TransactionPage{}, err
	}
	return c.decodePage(op, body)
}

func (c *Client) GetTransaction(ctx context.Context, id models.TransactionID) (models.Transaction, error) {
	const op = "apiclient.GetTransaction"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/api/transactions/" + id.String(), auth: authRequired})
	if err != nil {
		return models.Transaction{}, err
	}
	var tx models.Transaction
	if err := c.decode(op, body, &tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

func (c *Client) GetSummary(ctx context.Context, walletID models.WalletID) (models.Summary, error) {
	const op = "apiclient.GetSummary"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/api/transactions/summary/" + walletID.String(), auth: authRequired})
	if err != nil {
		return models.Summary{}, err
	}
	var summary models.Summary
	if err := c.decode(op, body, &summary); err != nil {
		return models.Summary{}, err
	}
	return summary, nil
}

func (c *Client) GetGraph(ctx context.Context, req models.GraphRequest) (models.Graph, error) {
	const op = "apiclient.GetGraph"
	if !req.View.IsValid() {
		return models.Graph{}, fmt.Errorf("%s: %w: unknown view %q", op, custom_err.ErrValidation, req.View)
	}
	body, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/api/transactions/graph", body: req, auth: authRequired})
	if err != nil {
		return models.Graph{}, err
	}
	payload, err := unwrap(body)
	if err != nil {
		return models.Graph{}, withOp(op, err)
	}
	// {"data": [...]} without a year unwraps to the bare series
	graph := models.Graph{Year: req.Year}
	if len(payload) > 0 && payload[0] == '[' {
		if err := c.decode(op, payload, &graph.Data); err != nil {
			return models.Graph{}, err
		}
		return graph, nil
	}
	if err := c.decode(op, payload, &graph); err != nil {
		return models.Graph{}, err
	}
	return graph, nil
}

// ExportTransactionPDF downloads the proof of a transaction as a PDF document.
func (c *Client) ExportTransactionPDF(ctx context.Context, id models.TransactionID) ([]byte, error) {
	const op = "apiclient.ExportTransactionPDF"
	body, err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   "/api/transactions/export-pdf/" + id.String(),
		auth:   authRequired,
		accept: "application/pdf",
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "empty document"}
	}
	return body, nil
}
