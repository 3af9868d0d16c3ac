package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	passwordSpecials = "!@#$%^&*"

	tagPassword = "password_policy"
	tagEmail    = "loose_email"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	msgName          = "Name must be between 20 and 60 characters"
	msgEmail         = "Valid email is required"
	msgPasswordLen   = "Password must be between 8 and 16 characters"
	msgPasswordRule  = "Password must contain at least one uppercase letter and one special character"
	msgAddressMax    = "Address must be at most 400 characters"
	msgAddressNeeded = "Address is required"
	msgStoreName     = "Store name is required and must be at most 60 characters"
	msgRating        = "Rating must be between 1 and 5"
	msgRole          = "Role must be one of admin, user, store_owner"
)

// message ตาม StructNamespace (+ ".tag" ถ้าเฉพาะ tag)
var nsMessages = map[string]string{
	"UserInput.Name":               msgName,
	"UserInput.Email":              msgEmail,
	"UserInput.Password":           msgPasswordLen,
	"UserInput.Address":            msgAddressMax,
	"loginInput.Email.required":    "Email is required",
	"loginInput.Password.required": "Password is required",
	"StoreInput.Name":              msgStoreName,
	"StoreInput.Email":             msgEmail,
	"StoreInput.Address":           msgAddressMax,
	"StoreInput.Address.required":  msgAddressNeeded,
	"StoreInput.OwnerEmail":        msgEmail,
}

// ใช้กับ request DTO ของ controller ที่ไม่มีใน nsMessages
var fieldMessages = map[string]string{
	"storeId":     "storeId is required",
	"rating":      msgRating,
	"role":        msgRole,
	"email":       msgEmail,
	"password":    msgPasswordLen,
	"newPassword": msgPasswordLen,
}

var tagMessages = map[string]string{
	tagPassword: msgPasswordRule,
	tagEmail:    msgEmail,
}

var inputValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterRules(v)
	return v
}

// RegisterRules ลง custom tag + ใช้ชื่อ json เป็นชื่อ field
// ใช้ได้ทั้งกับ validator ของ services และ engine ของ gin binding
func RegisterRules(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation(tagPassword, passwordPolicy)
	_ = v.RegisterValidation(tagEmail, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// passwordPolicy อย่างน้อยหนึ่งตัวพิมพ์ใหญ่ และหนึ่งตัวจาก !@#$%^&*
func passwordPolicy(fl validator.FieldLevel) bool {
	var upper, special bool
	for _, r := range fl.Field().String() {
		if unicode.IsUpper(r) {
			upper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			special = true
		}
	}
	return upper && special
}

// FromFieldErrors แปลงผลของ validator เป็น ValidationError
// คืน err เดิมถ้าไม่ใช่ validator.ValidationErrors
func FromFieldErrors(err error) error {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err
	}
	v := &ValidationError{}
	for _, fe := range fes {
		v.Add(fe.Field(), messageFor(fe))
	}
	return v.Err()
}

func messageFor(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if m, ok := nsMessages[ns+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := tagMessages[fe.Tag()]; ok {
		return m
	}
	if m, ok := nsMessages[ns]; ok {
		return m
	}
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	if m, ok := fieldMessages[fe.Field()]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// validateVar ตรวจค่าเดี่ยว แล้วใส่ชื่อ field ให้
func validateVar(field string, value any, tag string) error {
	err := inputValidator.Var(value, tag)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err
	}
	msg, ok := tagMessages[fes[0].Tag()]
	if !ok {
		msg = fieldMessages[field]
	}
	return invalid(field, msg)
}

// UserInput ใช้ร่วมกันระหว่าง register และ admin สร้าง user
type UserInput struct {
	Name     string `json:"name" validate:"min=20,max=60"`
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"min=8,max=16,password_policy"`
	Address  string `json:"address" validate:"max=400"`
}

func (in *UserInput) normalize() {
	in.Email = normalizeEmail(in.Email)
}

func (in UserInput) validate() error {
	return FromFieldErrors(inputValidator.Struct(in))
}

func (in StoreInput) validate() error {
	return FromFieldErrors(inputValidator.Struct(in))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
