package memory

import (
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

// tables holds the unsynchronised operations. Callers must own the store
// semaphore.
type tables struct {
	st  *state
	now func() time.Time
}

func (t *tables) createCustomer(customer domain.Customer) (domain.Customer, error) {
	if _, exists := t.st.customers[customer.ID]; exists {
		return domain.Customer{}, commons.ErrDuplicateRecord
	}
	for _, existing := range t.st.customers {
		if existing.IDNumber == customer.IDNumber || existing.AccountNumber == customer.AccountNumber {
			return domain.Customer{}, commons.ErrDuplicateRecord
		}
	}
	if customer.Balance.IsNegative() {
		return domain.Customer{}, commons.ErrInsufficientBalance
	}

	now := t.now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	t.st.customers[customer.ID] = customer
	return customer, nil
}

func (t *tables) customerByID(id string) (domain.Customer, error) {
	customer, ok := t.st.customers[id]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}
	return customer, nil
}

func (t *tables) customerWhere(match func(domain.Customer) bool) (domain.Customer, error) {
	for _, customer := range t.st.customers {
		if match(customer) {
			return customer, nil
		}
	}
	return domain.Customer{}, commons.ErrRecordNotFound
}

func (t *tables) updateBalance(id string, newBalance decimal.Decimal) error {
	if newBalance.IsNegative() {
		return commons.ErrInsufficientBalance
	}
	customer, ok := t.st.customers[id]
	if !ok {
		return commons.ErrRecordNotFound
	}
	customer.Balance = newBalance
	customer.UpdatedAt = t.now()
	t.st.customers[id] = customer
	return nil
}

func (t *tables) createPayment(payment domain.Payment) (domain.Payment, error) {
	if _, exists := t.st.payments[payment.ID]; exists {
		return domain.Payment{}, commons.ErrDuplicateRecord
	}
	if _, ok := t.st.customers[payment.CustomerID]; !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}

	payment.Verified = false
	payment.Submitted = false
	payment.VerifiedAt = nil
	payment.SubmittedAt = nil
	payment.CreatedAt = t.now()
	t.st.payments[payment.ID] = payment
	t.st.paymentOrder = append(t.st.paymentOrder, payment.ID)
	return payment, nil
}

func (t *tables) paymentByID(id string) (domain.Payment, error) {
	payment, ok := t.st.payments[id]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}
	return payment, nil
}

func (t *tables) updatePaymentState(id string, verified bool, submitted bool) (domain.Payment, error) {
	payment, ok := t.st.payments[id]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}

	now := t.now()
	if verified && !payment.Verified {
		payment.Verified = true
		payment.VerifiedAt = &now
	}
	if submitted && !payment.Submitted {
		payment.Submitted = true
		payment.SubmittedAt = &now
	}
	t.st.payments[id] = payment
	return payment, nil
}

// paymentsWhere walks payments in creation order, or newest first when
// newestFirst is set.
func (t *tables) paymentsWhere(newestFirst bool, match func(domain.Payment) bool) []domain.Payment {
	out := make([]domain.Payment, 0)
	n := len(t.st.paymentOrder)
	for i := 0; i < n; i++ {
		idx := i
		if newestFirst {
			idx = n - 1 - i
		}
		payment := t.st.payments[t.st.paymentOrder[idx]]
		if match(payment) {
			out = append(out, payment)
		}
	}
	return out
}
