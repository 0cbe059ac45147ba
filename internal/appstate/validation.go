package appstate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NetLive5/weblarek/internal/domain"
)

// deliveryDetails is the order form group: how to pay and where to deliver
type deliveryDetails struct {
	Payment string `json:"payment" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// contactDetails is the contacts form group
type contactDetails struct {
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

var requiredMessages = map[domain.Field]string{
	domain.FieldAddress: "Address is required",
	domain.FieldPayment: "Payment method is required",
	domain.FieldEmail:   "Email is required",
	domain.FieldPhone:   "Phone is required",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so they line up with domain.Field
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkGroup validates one field group and returns its error map (empty when valid)
func checkGroup(v *validator.Validate, group any) domain.FormErrors {
	out := domain.FormErrors{}

	err := v.Struct(group)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a non-struct group, which is a programming error
		panic(fmt.Sprintf("appstate: validating %T: %v", group, err))
	}

	for _, fe := range verrs {
		field := domain.Field(fe.Field())
		msg, ok := requiredMessages[field]
		if !ok || fe.Tag() != "required" {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out[field] = msg
	}
	return out
}
