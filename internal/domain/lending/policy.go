package lending

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// Fine schedule. Amounts are in PHP.
var (
	overdueDailyRate = decimal.NewFromInt(25)
	damageFineAmount = decimal.NewFromInt(300)
)

// MaxActiveLoans is the borrowing limit per borrower
const MaxActiveLoans = 3

// MaxLostDamagedStrikes is the number of historical lost or damaged loans
// after which a borrower may no longer renew
const MaxLostDamagedStrikes = 3

// OverdueDays computes the number of chargeable days for a loan past due,
// floored at one full day.
func OverdueDays(now, dueDate time.Time) int {
	days := int(now.Sub(dueDate).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// OverdueFine computes the accrued fine for the given number of overdue days.
// Days below one are charged as one.
func OverdueFine(days int) valueobject.Money {
	if days < 1 {
		days = 1
	}
	return valueobject.NewMoneyPHP(overdueDailyRate.Mul(decimal.NewFromInt(int64(days))))
}

// DamageFine returns the flat fine for a damaged copy
func DamageFine() valueobject.Money {
	return valueobject.NewMoneyPHP(damageFineAmount)
}

// CanIssue checks the borrowing limit: a borrower may hold at most
// MaxActiveLoans active unreturned loans at a time.
func CanIssue(currentActive, requested int) bool {
	return currentActive+requested <= MaxActiveLoans
}

// CanRenew checks the strike policy: borrowers with a history of losing or
// damaging copies forfeit renewal.
func CanRenew(lostDamagedCount int) bool {
	return lostDamagedCount < MaxLostDamagedStrikes
}
