package ledger

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestInMemoryLedger(t *testing.T) {
	suite.Run(t, &LedgerContractSuite{
		newLedger: func() ledgerStore { return NewInMemory() },
	})
}
