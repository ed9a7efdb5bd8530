package uid

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var _ UIDGenerator = (*snowflakeGenerator)(nil)

type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake-backed UIDGenerator. nodeID must be
// unique per running instance (0-1023).
func NewSnowflake(nodeID int64) (UIDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("uid: failed to create snowflake node: %w", err)
	}
	return &snowflakeGenerator{node: node}, nil
}

func (g *snowflakeGenerator) Generate(_ context.Context) (string, error) {
	return g.node.Generate().String(), nil
}
