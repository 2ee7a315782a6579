package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var customerValidator = validator.New(validator.WithRequiredStructEnabled())

// Address — адрес доставки. Поля необязательны.
type Address struct {
	Street  string
	City    string
	State   string
	Pincode string
}

// Customer — контактные данные покупателя; имя и email обязательны.
type Customer struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string
	Address Address
}

// Normalize обрезает пробелы во всех полях.
func (c Customer) Normalize() Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address.Street = strings.TrimSpace(c.Address.Street)
	c.Address.City = strings.TrimSpace(c.Address.City)
	c.Address.State = strings.TrimSpace(c.Address.State)
	c.Address.Pincode = strings.TrimSpace(c.Address.Pincode)
	return c
}

// Validate возвращает ErrInvalidCustomer с перечнем невалидных полей.
func (c Customer) Validate() error {
	if err := customerValidator.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
		}
		if len(fields) == 0 {
			return ErrInvalidCustomer
		}
		return fmt.Errorf("%w: invalid %s", ErrInvalidCustomer, strings.Join(fields, ", "))
	}
	return nil
}
