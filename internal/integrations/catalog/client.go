package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

const restPrefix = "/rest/v1"

// Client клиент REST API каталога магазинов и услуг (PostgREST)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetShop получает магазин по ID
func (c *Client) GetShop(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error) {
	var shops []Shop
	if err := c.selectByID(ctx, "shops", shopID, &shops); err != nil {
		return nil, err
	}

	if len(shops) == 0 {
		return nil, ErrShopNotFound
	}

	return shops[0].ToDomain(), nil
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error) {
	var services []Service
	if err := c.selectByID(ctx, "services", serviceID, &services); err != nil {
		return nil, err
	}

	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}

	return services[0].ToDomain(), nil
}

// selectByID выполняет GET /rest/v1/{table}?id=eq.{id}&select=* и декодирует массив строк в dst
func (c *Client) selectByID(ctx context.Context, table string, id uuid.UUID, dst interface{}) error {
	query := url.Values{}
	query.Set("id", "eq."+id.String())
	query.Set("select", "*")
	endpoint := fmt.Sprintf("%s%s/%s?%s", c.baseURL, restPrefix, table, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Catalog request failed: table=%s, id=%s, error=%v", table, id, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Catalog request: table=%s, id=%s, status=%d, took=%s", table, id, resp.StatusCode, time.Since(start))

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		// PostgREST отвечает 400 на синтаксически неверный uuid
		return fmt.Errorf("%w: %s", ErrInvalidResponse, readError(resp.Body))
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readError достает message из тела ошибки PostgREST, иначе возвращает тело как есть
func readError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return err.Error()
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}

	return string(raw)
}
