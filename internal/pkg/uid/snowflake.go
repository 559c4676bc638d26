package uid

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/bwmarrin/snowflake"
)

const snowflakeMaxNode = 1023

// Snowflake generates sortable numeric IDs used as database primary keys.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake constructs a Snowflake generator with a random node number,
// which is good enough while the service runs as a small replica set.
func NewSnowflake() (*Snowflake, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(snowflakeMaxNode+1))
	if err != nil {
		return nil, fmt.Errorf("uid: snowflake node selection: %w", err)
	}

	node, err := snowflake.NewNode(n.Int64())
	if err != nil {
		return nil, fmt.Errorf("uid: snowflake init: %w", err)
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
