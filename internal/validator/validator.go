// Package validator registers custom validation functions with Gin's
// binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tramex/internal/money"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transfer_currency", validateTransferCurrency)
		_ = v.RegisterValidation("direction", validateDirection)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("transfer_status", validateTransferStatus)
		_ = v.RegisterValidation("parcel_status", validateParcelStatus)
		_ = v.RegisterValidation("parcel_priority", validateParcelPriority)
		_ = v.RegisterValidation("staff_role", validateStaffRole)
		_ = v.RegisterValidation("report_period", validateReportPeriod)
	}
}

func validateTransferCurrency(fl validator.FieldLevel) bool {
	return money.Supported(fl.Field().String())
}

func validateDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "kinshasa_to_dubai", "dubai_to_kinshasa":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "agency", "mobile_money":
		return true
	}
	return false
}

func validateTransferStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "validated", "completed", "cancelled":
		return true
	}
	return false
}

func validateParcelStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "received", "processing", "in_transit", "delivered", "delayed":
		return true
	}
	return false
}

func validateParcelPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "standard", "express", "urgent":
		return true
	}
	return false
}

func validateStaffRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "supervisor", "operator", "auditor":
		return true
	}
	return false
}

func validateReportPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly", "all":
		return true
	}
	return false
}
