package hotelservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы с HotelService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента HotelService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetHotel получает данные отеля: налоговую ставку, процент депозита
// и список идентификаторов персонала
func (c *Client) GetHotel(ctx context.Context, hotelID int64) (*Hotel, error) {
	url := fmt.Sprintf("%s/internal/hotels/%d", c.baseURL, hotelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid hotel ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrHotelNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var hotel Hotel
	if err := json.NewDecoder(resp.Body).Decode(&hotel); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &hotel, nil
}

// GetHotelWithGracefulDegradation получает данные отеля с graceful degradation
// При недоступности HotelService возвращает ErrServiceDegraded, что позволяет
// сервису использовать дефолтные ставки налога и депозита
func (c *Client) GetHotelWithGracefulDegradation(ctx context.Context, hotelID int64) (*Hotel, error) {
	c.log.Info("Fetching hotel id=%d", hotelID)

	hotel, err := c.GetHotel(ctx, hotelID)
	if err != nil {
		// Отсутствие отеля - бизнес-ошибка, пробрасываем дальше
		if errors.Is(err, ErrHotelNotFound) {
			c.log.Info("Hotel id=%d not found", hotelID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки
		// парсинга) применяем graceful degradation - дефолтные ставки
		c.log.Error("HotelService unavailable, applying graceful degradation for hotel id=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: hotel_id=%d, error=%v", ErrServiceDegraded, hotelID, err)
	}

	c.log.Info("Successfully fetched hotel id=%d, tax_rate=%.2f, deposit_percent=%.2f",
		hotelID, hotel.TaxRate, hotel.DepositPercent)
	return hotel, nil
}
