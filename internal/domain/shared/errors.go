package shared

// DomainError is a business-rule failure with a stable machine code and a
// user-facing message. Handlers map the code to an HTTP status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages are the Vietnamese strings shown to the
// admin console user; codes are stable and used for HTTP mapping.
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Không tìm thấy dữ liệu")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Dữ liệu đã tồn tại")
	ErrValidation        = NewDomainError("VALIDATION_ERROR", "Dữ liệu không hợp lệ")
	ErrInvalidQuantity   = NewDomainError("INVALID_QUANTITY", "Số lượng không hợp lệ")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Số lượng tồn kho không đủ")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Thao tác không được phép ở trạng thái hiện tại")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Vui lòng đăng nhập")
	ErrForbidden         = NewDomainError("FORBIDDEN", "Không có quyền thực hiện thao tác này")
	ErrInvalidPassword   = NewDomainError("INVALID_CREDENTIALS", "Email hoặc mật khẩu không đúng")
)
