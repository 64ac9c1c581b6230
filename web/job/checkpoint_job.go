package job

import (
	"github.com/eventum/eventum/database"
	"github.com/eventum/eventum/logger"
	"github.com/eventum/eventum/util/common"
)

// CheckpointJob folds the sqlite write-ahead log back into the database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if database.GetDB() == nil {
		return
	}
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
