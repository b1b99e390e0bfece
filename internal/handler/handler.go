package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/segyhp/reminder-engine/internal/domain"
	customError "github.com/segyhp/reminder-engine/pkg/errors"
	"github.com/segyhp/reminder-engine/pkg/phone"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// ClientService is the client workflow the handlers call; implemented by service.ClientService
type ClientService interface {
	Create(ctx context.Context, request domain.CreateClientRequest) (*domain.ClientResponse, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, query domain.ClientQuery) ([]*domain.Client, error)
	Update(ctx context.Context, id int64, request domain.UpdateClientRequest) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentService is implemented by service.PaymentService
type PaymentService interface {
	Create(ctx context.Context, request domain.CreatePaymentRequest) (*domain.Payment, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, query domain.PaymentQuery) ([]*domain.Payment, error)
	Update(ctx context.Context, id int64, request domain.UpdatePaymentRequest) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
	SetPaid(ctx context.Context, id int64, paid bool) (*domain.Payment, error)
	ToggleStatus(ctx context.Context, id int64) (*domain.Payment, error)
	SetVisible(ctx context.Context, id int64, visible bool) (*domain.Payment, error)
}

// ReminderService is implemented by service.ReminderService
type ReminderService interface {
	Preview(ctx context.Context, paymentID int64) (*domain.ReminderResult, error)
	Send(ctx context.Context, request domain.SendRemindersRequest) (*domain.SendReport, error)
}

// BacklogService is implemented by service.BacklogService
type BacklogService interface {
	List(ctx context.Context, paymentID *int64) ([]*domain.BacklogEntry, error)
}

// NewValidator returns a validator that understands decimal.Decimal fields and
// the decimal_gte, decimal_gt and phone tags.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("decimal_gte", decimalCompare(func(c int) bool { return c >= 0 }))
	_ = v.RegisterValidation("decimal_gt", decimalCompare(func(c int) bool { return c > 0 }))
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := phone.Validate(fl.Field().String())
		return err == nil
	})

	return v
}

func decimalCompare(ok func(int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(value.Cmp(bound))
	}
}

func decodeAndValidate(r *http.Request, v *validator.Validate, dst interface{}) error {
	// an empty body decodes to the zero request and is left to validation
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return customError.WrapValidation(fmt.Errorf("invalid request body: %w", err))
	}
	if err := v.Struct(dst); err != nil {
		return customError.WrapValidation(err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, customError.WrapValidation(fmt.Errorf("%s must be a positive integer", name))
	}
	return id, nil
}

// queryID parses an optional positive integer query parameter; absent means nil
func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, customError.WrapValidation(fmt.Errorf("%s must be a positive integer", name))
	}
	return &id, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, customError.WrapValidation(errors.New(name + " must be a boolean"))
	}
	return b, nil
}
