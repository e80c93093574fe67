package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/services"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type reviewFixture struct {
	store      *memory.Store
	customer   domain.Principal
	employee   domain.Principal
	payments   *services.PaymentService
	review     *services.ReviewService
	dispatched []string
}

func newReviewFixture(t *testing.T, dispatchErr error) *reviewFixture {
	t.Helper()
	f := &reviewFixture{store: memory.NewStore()}
	f.customer = seedCustomer(t, f.store, "c-1", domain.RoleCustomer)
	f.employee = seedCustomer(t, f.store, "e-1", domain.RoleEmployee)
	f.payments = newPaymentService(t, f.store, f.store)
	f.review = services.NewReviewService(f.store.Payments(), f.store, dispatcherStub{
		dispatchFn: func(_ context.Context, payment domain.Payment) error {
			if dispatchErr != nil {
				return dispatchErr
			}
			f.dispatched = append(f.dispatched, payment.ID)
			return nil
		},
	}, testTimeout)
	return f
}

func (f *reviewFixture) createPayment(t *testing.T) string {
	t.Helper()
	resp, err := f.payments.CreatePayment(context.Background(), f.customer, usdPayment("100"))
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return resp.Data.ID
}

func TestReviewServiceVerifyThenSubmit(t *testing.T) {
	f := newReviewFixture(t, nil)
	id := f.createPayment(t)
	ctx := context.Background()

	verified, err := f.review.VerifyPayment(ctx, f.employee, id)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.Data.Status != string(domain.PaymentStateVerified) || verified.Data.VerifiedAt == nil {
		t.Fatalf("unexpected verified payment %+v", *verified.Data)
	}

	submitted, err := f.review.SubmitPayment(ctx, f.employee, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Data.Status != string(domain.PaymentStateSubmitted) {
		t.Fatalf("expected submitted, got %s", submitted.Data.Status)
	}
	if len(f.dispatched) != 1 || f.dispatched[0] != id {
		t.Fatalf("expected one dispatch for %s, got %v", id, f.dispatched)
	}

	again, err := f.review.SubmitPayment(ctx, f.employee, id)
	if err != nil {
		t.Fatalf("expected repeated submit to be accepted, got %v", err)
	}
	if again.Data.Status != string(domain.PaymentStateSubmitted) || len(f.dispatched) != 1 {
		t.Fatalf("expected no second dispatch, got %v", f.dispatched)
	}

	reverify, err := f.review.VerifyPayment(ctx, f.employee, id)
	if err != nil || reverify.Data.Status != string(domain.PaymentStateSubmitted) {
		t.Fatalf("expected verify on submitted payment to be a no-op, got %v", err)
	}

	if got := balanceOf(t, f.store, "c-1").String(); got != "23150" {
		t.Fatalf("expected review not to touch balance, got %s", got)
	}
}

func TestReviewServiceSubmitBeforeVerify(t *testing.T) {
	f := newReviewFixture(t, nil)
	id := f.createPayment(t)

	resp, err := f.review.SubmitPayment(context.Background(), f.employee, id)
	expectKind(t, err, commons.KindPrecondition)
	if resp.Message != "Must verify first" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	payment, _ := f.store.Payments().GetByID(context.Background(), id)
	if payment.State() != domain.PaymentStateUnverified || len(f.dispatched) != 0 {
		t.Fatal("expected payment to stay unverified without dispatch")
	}
}

func TestReviewServiceDispatchFailureKeepsPaymentVerified(t *testing.T) {
	f := newReviewFixture(t, errors.New("broker down"))
	id := f.createPayment(t)

	if _, err := f.review.VerifyPayment(context.Background(), f.employee, id); err != nil {
		t.Fatalf("verify: %v", err)
	}
	_, err := f.review.SubmitPayment(context.Background(), f.employee, id)
	expectKind(t, err, commons.KindStorage)

	payment, _ := f.store.Payments().GetByID(context.Background(), id)
	if payment.State() != domain.PaymentStateVerified {
		t.Fatalf("expected payment to remain verified, got %s", payment.State())
	}
}

func TestReviewServiceRequiresEmployee(t *testing.T) {
	f := newReviewFixture(t, nil)
	id := f.createPayment(t)

	_, err := f.review.VerifyPayment(context.Background(), f.customer, id)
	expectKind(t, err, commons.KindForbidden)
	_, err = f.review.SubmitPayment(context.Background(), f.customer, id)
	expectKind(t, err, commons.KindForbidden)
	_, err = f.review.ListPending(context.Background(), f.customer)
	expectKind(t, err, commons.KindForbidden)
}

func TestReviewServiceUnknownPayment(t *testing.T) {
	f := newReviewFixture(t, nil)

	_, err := f.review.VerifyPayment(context.Background(), f.employee, uuid.NewString())
	expectKind(t, err, commons.KindNotFound)
	_, err = f.review.SubmitPayment(context.Background(), f.employee, "not-a-uuid")
	expectKind(t, err, commons.KindNotFound)
}

func TestReviewServiceListPendingOldestFirst(t *testing.T) {
	f := newReviewFixture(t, nil)
	first := f.createPayment(t)
	second := f.createPayment(t)
	third := f.createPayment(t)

	if _, err := f.review.VerifyPayment(context.Background(), f.employee, second); err != nil {
		t.Fatalf("verify: %v", err)
	}

	resp, err := f.review.ListPending(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	list := *resp.Data
	if len(list) != 2 || list[0].ID != first || list[1].ID != third {
		t.Fatalf("expected unverified payments oldest first, got %+v", list)
	}
}

func TestReviewServiceConcurrentSubmitDispatchesOnce(t *testing.T) {
	f := newReviewFixture(t, nil)
	id := f.createPayment(t)
	if _, err := f.review.VerifyPayment(context.Background(), f.employee, id); err != nil {
		t.Fatalf("verify: %v", err)
	}

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := f.review.SubmitPayment(context.Background(), f.employee, id)
			return err
		})
		g.Go(func() error {
			_, err := f.review.VerifyPayment(context.Background(), f.employee, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("expected repeated transitions to be no-ops, got %v", err)
	}

	payment, _ := f.store.Payments().GetByID(context.Background(), id)
	if payment.State() != domain.PaymentStateSubmitted {
		t.Fatalf("expected submitted, got %s", payment.State())
	}
	if len(f.dispatched) != 1 || f.dispatched[0] != id {
		t.Fatalf("expected exactly one dispatch, got %v", f.dispatched)
	}
}

func TestReviewServiceConcurrentVerifyAndSubmitFromUnverified(t *testing.T) {
	f := newReviewFixture(t, nil)
	id := f.createPayment(t)

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := f.review.VerifyPayment(context.Background(), f.employee, id)
			return err
		})
		g.Go(func() error {
			_, err := f.review.SubmitPayment(context.Background(), f.employee, id)
			if commons.KindOf(err) == commons.KindPrecondition {
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment, _ := f.store.Payments().GetByID(context.Background(), id)
	switch payment.State() {
	case domain.PaymentStateSubmitted:
		if len(f.dispatched) != 1 {
			t.Fatalf("expected one dispatch for submitted payment, got %v", f.dispatched)
		}
	case domain.PaymentStateVerified:
		if len(f.dispatched) != 0 {
			t.Fatalf("expected no dispatch for verified payment, got %v", f.dispatched)
		}
	default:
		t.Fatalf("expected payment to be at least verified, got %s", payment.State())
	}
}
