package enums

// TransactionType labels statement rows as sales or refunds.
type TransactionType string

const (
	TransactionTypeSale   TransactionType = "sale"
	TransactionTypeRefund TransactionType = "refund"
)

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeSale || t == TransactionTypeRefund
}
