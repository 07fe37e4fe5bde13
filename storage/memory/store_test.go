package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"player-registry/storage"
	"player-registry/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &storagetest.StoreSuite{
		NewStore: func() storage.PlayerStore { return New() },
	})
}
