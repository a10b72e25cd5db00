package checkout

import "sort"

type StepID string

const (
	StepShipping       StepID = "shipping"
	StepBilling        StepID = "billing"
	StepShippingMethod StepID = "shipping_method"
	StepPayment        StepID = "payment"
	StepReview         StepID = "review"
)

// Step is one wizard stage. Prerequisites declare ordering explicitly
// instead of leaning on array positions; Completed is the gating predicate,
// always evaluated against live session state.
type Step struct {
	ID            StepID
	Title         string
	Order         int
	Required      bool
	Prerequisites []StepID
	Completed     func(*CheckoutSession) bool
}

// DefaultSteps is the standard checkout sequence. Review never completes; it
// is only exited by a successful payment discarding the session.
func DefaultSteps() []Step {
	return []Step{
		{
			ID:       StepShipping,
			Title:    "Shipping Address",
			Order:    1,
			Required: true,
			Completed: func(s *CheckoutSession) bool {
				return s.ShippingAddress != nil
			},
		},
		{
			ID:            StepBilling,
			Title:         "Billing Address",
			Order:         2,
			Required:      true,
			Prerequisites: []StepID{StepShipping},
			Completed: func(s *CheckoutSession) bool {
				return s.BillingAddress != nil || s.BillingSameAsShipping
			},
		},
		{
			ID:            StepShippingMethod,
			Title:         "Shipping Method",
			Order:         3,
			Required:      true,
			Prerequisites: []StepID{StepBilling},
			Completed: func(s *CheckoutSession) bool {
				return s.ShippingMethod != nil
			},
		},
		{
			ID:            StepPayment,
			Title:         "Payment",
			Order:         4,
			Required:      true,
			Prerequisites: []StepID{StepShippingMethod},
			Completed: func(s *CheckoutSession) bool {
				return s.PaymentMethod != nil
			},
		},
		{
			ID:            StepReview,
			Title:         "Review & Place Order",
			Order:         5,
			Required:      true,
			Prerequisites: []StepID{StepPayment},
			Completed: func(s *CheckoutSession) bool {
				return false
			},
		},
	}
}

// Wizard walks an ordered step list with a clamped cursor. Completion is
// recomputed from the session on every check, never cached: a session
// mutation can retroactively invalidate later steps.
type Wizard struct {
	steps   []Step
	current int
}

func NewWizard(steps []Step) *Wizard {
	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return &Wizard{steps: sorted}
}

func (w *Wizard) Steps() []Step {
	return w.steps
}

func (w *Wizard) CurrentStep() Step {
	return w.steps[w.current]
}

func (w *Wizard) CurrentIndex() int {
	return w.current
}

// NextStep moves the cursor forward; a no-op at the last step.
func (w *Wizard) NextStep() {
	if w.current < len(w.steps)-1 {
		w.current++
	}
}

// PrevStep moves the cursor back; a no-op at the first step.
func (w *Wizard) PrevStep() {
	if w.current > 0 {
		w.current--
	}
}

// GoToStep jumps directly to index if gating allows it. Returns whether the
// jump happened.
func (w *Wizard) GoToStep(session *CheckoutSession, index int) bool {
	if index < 0 || index >= len(w.steps) {
		return false
	}
	if !w.CanProceedToStep(session, index) {
		return false
	}
	w.current = index
	return true
}

// CanProceedToStep reports whether every step before index is completed.
// Index 0 is always reachable.
func (w *Wizard) CanProceedToStep(session *CheckoutSession, index int) bool {
	if index <= 0 {
		return index == 0
	}
	if index >= len(w.steps) {
		return false
	}
	for i := 0; i < index; i++ {
		if !w.stepCompleted(session, w.steps[i]) {
			return false
		}
	}
	return true
}

// IsStepCompleted evaluates one step's predicate, requiring its declared
// prerequisites first.
func (w *Wizard) IsStepCompleted(session *CheckoutSession, id StepID) bool {
	for _, step := range w.steps {
		if step.ID == id {
			return w.stepCompleted(session, step)
		}
	}
	return false
}

func (w *Wizard) stepCompleted(session *CheckoutSession, step Step) bool {
	for _, prereq := range step.Prerequisites {
		if !w.IsStepCompleted(session, prereq) {
			return false
		}
	}
	return step.Completed != nil && step.Completed(session)
}

// Progress is the display-only ratio in (0, 1]; it gates nothing.
func (w *Wizard) Progress() float64 {
	return float64(w.current+1) / float64(len(w.steps))
}
