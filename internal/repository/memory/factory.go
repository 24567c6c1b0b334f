package memory

import (
	"time"

	repo "github.com/pointledger/pointledger/internal/repository"
)

type Repositories struct {
	Balances  repo.Balances
	Histories repo.Histories
}

// Clock returns the current time. Stores call it for every stamp they write.
type Clock func() time.Time

func NewRepositories(now Clock) Repositories {
	return Repositories{
		Balances:  NewBalances(now),
		Histories: NewHistories(),
	}
}
