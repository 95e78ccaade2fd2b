package store

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newStore: func() rosterStore { return NewInMemory() },
	})
}
