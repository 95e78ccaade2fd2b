//go:build integration

package ledger

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"ballotbox/pkg/testutil/containers"
)

func TestRedisLedger(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	suite.Run(t, &LedgerContractSuite{
		newLedger: func() ledgerStore { return NewRedis(rc.Client) },
	})
}

func TestPostgresLedger(t *testing.T) {
	pg := containers.NewPostgresContainer(t, Schema)
	suite.Run(t, &LedgerContractSuite{
		newLedger: func() ledgerStore { return NewPostgres(pg.DB) },
	})
}
