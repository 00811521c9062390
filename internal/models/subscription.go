package models

// SubscriptionPayment carries the raw query values returned by the payment gateway.
type SubscriptionPayment struct {
	IdentificadorEnlaceComercio string `json:"identificadorEnlaceComercio" form:"identificadorEnlaceComercio" validate:"required"`
	IdTransaccion               string `json:"idTransaccion" form:"idTransaccion" validate:"required"`
	IdEnlace                    string `json:"idEnlace" form:"idEnlace" validate:"required"`
	Monto                       string `json:"monto" form:"monto" validate:"required"`
	Hash                        string `json:"hash" form:"hash" validate:"required"`
}

// SubscriptionPaymentResult reports whether the subscription became active.
type SubscriptionPaymentResult struct {
	Active  bool   `json:"active"`
	Message string `json:"message,omitempty"`
}
