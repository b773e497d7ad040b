package cmd

import (
	"testing"

	"dirsync/core/reconcile"
	"dirsync/feature/dirsync"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["sync"])
	assert.True(t, names["plan"])
	assert.True(t, names["serve"])

	for _, flag := range []string{"dry-run", "no-delete", "concurrency"} {
		assert.NotNil(t, syncCmd.Flags().Lookup(flag), flag)
	}
}

func TestPrintPlanReport(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	plan := &reconcile.Plan{ToDelete: []reconcile.Delete{{ID: "c1", Key: "old@x.com"}}}
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com", "f@x.com", "g@x.com"} {
		plan.ToCreate = append(plan.ToCreate, reconcile.Identity{PrimaryEmail: email})
	}

	printPlanReport(zap.New(core), &dirsync.PlanReport{
		Environment: "dev",
		Summary:     plan.Summary(),
		Plan:        plan,
	})

	assert.Equal(t, 1, logs.FilterMessage("Sync plan").Len())
	assert.Equal(t, maxSamples+1, logs.FilterMessage("Sample action").Len())

	more := logs.FilterMessage("Additional creates not shown").All()
	if assert.Len(t, more, 1) {
		assert.Equal(t, int64(2), more[0].ContextMap()["count"])
	}
}
