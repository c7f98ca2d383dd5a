// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"net/http"
	"testing"
	"time"

	"github.com/flamego/session"
)

func TestPostgresSessionStoreLifecycle(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	initer := PostgresSessionIniter()
	store, err := initer(ctx, PostgresSessionConfig{Lifetime: time.Hour})
	if err != nil {
		t.Fatalf("PostgresSessionIniter failed: %v", err)
	}
	pgStore := store.(*PostgresSessionStore)

	noopWriter := func(_ http.ResponseWriter, _ *http.Request, _ string) {}

	sess1 := session.NewBaseSession("sess1", session.GobEncoder, noopWriter)
	sess1.Set("user_name", "Alice")
	sess1.Set("report_text", "Hemoglobin 11.5 g/dL")

	if err := pgStore.Save(ctx, sess1); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !pgStore.Exist(ctx, "sess1") {
		t.Fatalf("expected session to exist")
	}

	readSess, err := pgStore.Read(ctx, "sess1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if readSess.Get("user_name") != "Alice" {
		t.Fatalf("expected user_name to match")
	}

	if err := pgStore.Touch(ctx, "sess1"); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	sess2 := session.NewBaseSession("sess2", session.GobEncoder, noopWriter)
	sess2.Set("user_name", "Bob")
	if err := pgStore.Save(ctx, sess2); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	active, err := CountActiveSessions(ctx)
	if err != nil {
		t.Fatalf("CountActiveSessions failed: %v", err)
	}
	if active != 2 {
		t.Fatalf("expected 2 active sessions, got %d", active)
	}

	if err := pgStore.Destroy(ctx, "sess1"); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if pgStore.Exist(ctx, "sess1") {
		t.Fatalf("expected session to be removed")
	}

	if err := pgStore.GC(ctx); err != nil {
		t.Fatalf("GC failed: %v", err)
	}
}
