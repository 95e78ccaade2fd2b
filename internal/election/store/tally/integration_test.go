//go:build integration

package tally

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"ballotbox/pkg/testutil/containers"
)

func TestRedisTally(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	suite.Run(t, &TallyContractSuite{
		newTally: func() tallyStore { return NewRedis(rc.Client) },
	})
}

func TestPostgresTally(t *testing.T) {
	pg := containers.NewPostgresContainer(t, Schema)
	suite.Run(t, &TallyContractSuite{
		newTally: func() tallyStore { return NewPostgres(pg.DB) },
	})
}
