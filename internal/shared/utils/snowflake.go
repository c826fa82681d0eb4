package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// 自定义纪元 2024-01-01 00:00:00 UTC，毫秒。
	snowflakeEpochMilli int64 = 1704067200000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift uint8 = seqBits
	timeShift uint8 = nodeBits + seqBits
)

// Snowflake 按 41 位毫秒时间戳 + 10 位节点号 + 12 位序列号生成递增 ID，
// 用作城市等实体的主键。
type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range: %d", nodeID)
	}
	return &Snowflake{nodeID: nodeID}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().UnixMilli()
	if ts < s.lastTS {
		// 时钟回拨时不回退，保持单调递增。
		ts = s.lastTS
	}

	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			// 同一毫秒内序列号用完，自旋到下一毫秒。
			ts = waitNextMillisecond(s.lastTS)
		}
	} else {
		s.seq = 0
	}

	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

func waitNextMillisecond(lastTS int64) int64 {
	ts := time.Now().UnixMilli()
	for ts <= lastTS {
		ts = time.Now().UnixMilli()
	}
	return ts
}

var (
	defaultGenOnce sync.Once
	defaultGen     *Snowflake
	defaultGenErr  error
)

// NextSnowflakeID 用进程级默认生成器取号。
// 节点号取 SNOWFLAKE_NODE_ID 环境变量，未设置时为 1；多实例部署必须各自配置。
func NextSnowflakeID() (int64, error) {
	defaultGenOnce.Do(func() {
		nodeID := int64(1)
		raw := strings.TrimSpace(os.Getenv("SNOWFLAKE_NODE_ID"))
		if raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				defaultGenErr = fmt.Errorf("invalid SNOWFLAKE_NODE_ID: %w", err)
				return
			}
			nodeID = parsed
		}
		defaultGen, defaultGenErr = NewSnowflake(nodeID)
	})
	if defaultGenErr != nil {
		return 0, defaultGenErr
	}
	return defaultGen.NextID(), nil
}
