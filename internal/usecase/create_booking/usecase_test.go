package create_booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/guestservice"
	"github.com/m04kA/SMC-VenueService/internal/integrations/hotelservice"
	venueRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
	"github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	booking.ID = 42
	booking.Version = 1
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

type fakeVenueRepo struct {
	venue *domain.Venue
	err   error
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.venue == nil || f.venue.ID != id {
		return nil, venueRepo.ErrVenueNotFound
	}
	return f.venue, nil
}

type fakeChecker struct {
	err error
}

func (f *fakeChecker) Check(_ context.Context, _ *domain.Venue, _ domain.Interval, _ *int64) error {
	return f.err
}

type fakeGuestClient struct {
	err error
}

func (f *fakeGuestClient) GetGuest(_ context.Context, guestID int64) (*guestservice.Guest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &guestservice.Guest{ID: guestID, FullName: "Анна Иванова"}, nil
}

type fakeHotelClient struct {
	hotel *hotelservice.Hotel
	err   error
}

func (f *fakeHotelClient) GetHotelWithGracefulDegradation(_ context.Context, hotelID int64) (*hotelservice.Hotel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hotel, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func allWeekOpen(open, close string) domain.WeekSchedule {
	day := domain.DayHours{
		Available: true,
		Open:      types.TimeString(open),
		Close:     types.TimeString(close),
	}
	return domain.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func testVenue() *domain.Venue {
	return &domain.Venue{
		ID:                   10,
		HotelID:              7,
		Name:                 "Гранд-зал",
		CapacityMin:          10,
		CapacityMax:          200,
		BasePrice:            100,
		PricePerHour:         50,
		SetupBufferMinutes:   30,
		CleanupBufferMinutes: 30,
		MinBookingHours:      1,
		Status:               domain.VenueStatusActive,
		OperatingHours:       allWeekOpen("08:00", "22:00"),
		CancellationTier:     domain.TierModerate,
		Active:               true,
	}
}

func validRequest() *create_booking.Request {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return &create_booking.Request{
		GuestID:       1,
		VenueID:       10,
		EventName:     "Корпоратив",
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		AttendeeCount: 50,
		Services: []create_booking.LineItemRequest{
			{ItemID: 3, Name: "Проектор", UnitPrice: 25, Quantity: 2},
		},
	}
}

func newUseCase(
	bookingRepo *fakeBookingRepo,
	venues *fakeVenueRepo,
	checker *fakeChecker,
	guests *fakeGuestClient,
	hotels *fakeHotelClient,
) *create_booking.UseCase {
	return create_booking.NewUseCase(
		bookingRepo,
		venues,
		checker,
		pricing.NewCalculator(),
		guests,
		hotels,
		fakeTxManager{},
		nil,
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	hotels := &fakeHotelClient{hotel: &hotelservice.Hotel{ID: 7, TaxRate: 0.2, DepositPercent: 0.5}}
	uc := newUseCase(bookingRepo, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, &fakeGuestClient{}, hotels)

	req := validRequest()
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// 100 базовая + 50 * 2 часа + 2 * 25 услуги = 250, налог 20%
	assert.InDelta(t, 200.0, resp.Pricing.VenuePrice, 0.001)
	assert.InDelta(t, 50.0, resp.Pricing.ServicesCost, 0.001)
	assert.InDelta(t, 50.0, resp.Pricing.TaxAmount, 0.001)
	assert.InDelta(t, 300.0, resp.Pricing.GrandTotal, 0.001)

	// Депозит 50% от итога, баланс равен итогу до оплаты
	assert.True(t, resp.Payment.DepositRequired)
	assert.InDelta(t, 150.0, resp.Payment.DepositAmount, 0.001)
	assert.InDelta(t, 300.0, resp.Payment.Balance, 0.001)

	// Занятый интервал расширен буферами монтажа и уборки
	require.NotNil(t, bookingRepo.created)
	assert.Equal(t, req.StartTime.Add(-30*time.Minute), bookingRepo.created.SetupStart)
	assert.Equal(t, req.EndTime.Add(30*time.Minute), bookingRepo.created.CleanupEnd)

	// Первая запись таймлайна фиксирует создание гостем
	require.Len(t, resp.Timeline, 1)
	assert.Equal(t, string(domain.StatusPending), resp.Timeline[0].Status)
	assert.Equal(t, "guest:1", resp.Timeline[0].Actor)
}

func TestExecute_InitialStatusInquiry(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	hotels := &fakeHotelClient{hotel: &hotelservice.Hotel{ID: 7, TaxRate: 0.1, DepositPercent: 0.3}}
	uc := newUseCase(bookingRepo, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, &fakeGuestClient{}, hotels)

	req := validRequest()
	req.InitialStatus = ptr.Ptr(string(domain.StatusInquiry))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInquiry), resp.Status)
}

func TestExecute_InvalidInitialStatus(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, &fakeGuestClient{}, &fakeHotelClient{})

	req := validRequest()
	req.InitialStatus = ptr.Ptr("confirmed")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_booking.ErrInvalidStatus)
}

func TestExecute_StartTimeInPast(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, &fakeGuestClient{}, &fakeHotelClient{})

	req := validRequest()
	req.StartTime = time.Now().Add(-time.Hour)
	req.EndTime = req.StartTime.Add(2 * time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
}

func TestExecute_GuestNotFound(t *testing.T) {
	guests := &fakeGuestClient{err: guestservice.ErrGuestNotFound}
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, guests, &fakeHotelClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, create_booking.ErrGuestNotFound)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{}, &fakeChecker{}, &fakeGuestClient{}, &fakeHotelClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, create_booking.ErrVenueNotFound)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, &fakeGuestClient{}, &fakeHotelClient{})

	req := validRequest()
	req.AttendeeCount = 500

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_booking.ErrCapacityExceeded)
}

func TestExecute_VenueUnavailable(t *testing.T) {
	checker := &fakeChecker{err: errors.New("interval overlaps booking id=7")}
	uc := newUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue()}, checker, &fakeGuestClient{}, &fakeHotelClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, create_booking.ErrVenueUnavailable)
}

func TestExecute_HotelDegraded_UsesDefaultRates(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	hotels := &fakeHotelClient{err: hotelservice.ErrServiceDegraded}
	uc := newUseCase(bookingRepo, &fakeVenueRepo{venue: testVenue()}, &fakeChecker{}, &fakeGuestClient{}, hotels)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// subtotal 250, дефолтные ставки: налог 10%, депозит 30%
	assert.InDelta(t, domain.DefaultTaxRate, resp.Pricing.TaxRate, 0.0001)
	assert.InDelta(t, 275.0, resp.Pricing.GrandTotal, 0.001)
	assert.InDelta(t, 275.0*domain.DefaultDepositPercent, resp.Payment.DepositAmount, 0.001)
}
