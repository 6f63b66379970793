/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"gochartlabels/internal/chart"
	applog "gochartlabels/internal/log"
)

// ErrNoSnapshot is returned when a digest has never been stored.
var ErrNoSnapshot = errors.New("no snapshot for document")

// language=SQL
// dialect=SQLite
const insertSnapshotSQL = `INSERT INTO snapshots(digest, pass_id, created_at, visible, hidden, result, result_sha) VALUES (?, ?, ?, ?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestSnapshotSQL = `SELECT id, digest, pass_id, created_at, visible, hidden, result, result_sha FROM snapshots WHERE digest = ? ORDER BY id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listSnapshotsSQL = `SELECT id, digest, pass_id, created_at, visible, hidden, result, result_sha FROM snapshots WHERE digest = ? ORDER BY id DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneOldSnapshotsSQL = `DELETE FROM snapshots WHERE digest = ? AND id NOT IN (
	SELECT id FROM snapshots WHERE digest = ? ORDER BY id DESC LIMIT ?
)`

// Snapshot is one stored pass.
type Snapshot struct {
	ID        int64
	Digest    string
	PassID    string
	CreatedAt time.Time
	Visible   int
	Hidden    int
	Result    []byte // canonical JSON of the pass
	ResultSHA string
}

// Pass decodes the stored result.
func (s Snapshot) Pass() (*chart.Pass, error) {
	var p chart.Pass
	if err := json.Unmarshal(s.Result, &p); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", s.ID, err)
	}
	return &p, nil
}

// Encode returns the canonical JSON form of a pass and its hex SHA-256.
func Encode(p *chart.Pass) ([]byte, string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, "", fmt.Errorf("encode pass: %w", err)
	}
	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]), nil
}

// Save stores the pass under the digest of the document it came from.
func (s *Store) Save(ctx context.Context, digest string, p *chart.Pass) (Snapshot, error) {
	if digest == "" {
		return Snapshot{}, errors.New("digest is required")
	}
	data, sha, err := Encode(p)
	if err != nil {
		return Snapshot{}, err
	}
	stats := p.Stats()
	visible := lo.SumBy(stats, func(st chart.Stats) int { return st.Visible })
	hidden := lo.SumBy(stats, func(st chart.Stats) int { return st.Hidden })
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, insertSnapshotSQL, digest, p.ID, now.Format(time.RFC3339Nano), visible, hidden, data, sha)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	id, _ := res.LastInsertId()
	applog.WithOperation(applog.WithComponent("storage"), "save").DebugContext(ctx, "snapshot stored",
		slog.Int64("id", id), slog.String("digest", digest))
	return Snapshot{ID: id, Digest: digest, PassID: p.ID, CreatedAt: now, Visible: visible, Hidden: hidden, Result: data, ResultSHA: sha}, nil
}

// Latest returns the newest snapshot for digest or ErrNoSnapshot.
func (s *Store) Latest(ctx context.Context, digest string) (Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, selectLatestSnapshotSQL, digest))
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	return snap, err
}

// List returns up to limit snapshots for digest, newest first.
func (s *Store) List(ctx context.Context, digest string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, listSnapshotsSQL, digest, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Prune keeps only the newest keep snapshots for digest.
func (s *Store) Prune(ctx context.Context, digest string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, pruneOldSnapshotsSQL, digest, digest, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return res.RowsAffected()
}

// Verification compares a fresh pass with the newest stored one.
type Verification struct {
	Match   bool
	Stored  Snapshot
	Current string // SHA of the fresh pass
	// Differ names the series whose labels changed, in pass order.
	Differ []string
}

// Verify checks p against the newest snapshot for digest.
func (s *Store) Verify(ctx context.Context, digest string, p *chart.Pass) (Verification, error) {
	stored, err := s.Latest(ctx, digest)
	if err != nil {
		return Verification{}, err
	}
	_, sha, err := Encode(p)
	if err != nil {
		return Verification{}, err
	}
	v := Verification{Match: sha == stored.ResultSHA, Stored: stored, Current: sha}
	if v.Match {
		return v, nil
	}
	old, err := stored.Pass()
	if err != nil {
		return v, err
	}
	v.Differ = differingSeries(old, p)
	applog.WithOperation(applog.WithComponent("storage"), "verify").WarnContext(ctx, "layout drift",
		slog.String("digest", digest), slog.Any("series", v.Differ))
	return v, nil
}

func differingSeries(old, cur *chart.Pass) []string {
	n := max(len(old.Series), len(cur.Series))
	var out []string
	for i := 0; i < n; i++ {
		var a, b []byte
		name := ""
		if i < len(old.Series) {
			a, _ = json.Marshal(old.Series[i])
			name = old.Series[i].Name
		}
		if i < len(cur.Series) {
			b, _ = json.Marshal(cur.Series[i])
			name = cur.Series[i].Name
		}
		if !bytes.Equal(a, b) {
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			out = append(out, name)
		}
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var snap Snapshot
	var ts string
	if err := row.Scan(&snap.ID, &snap.Digest, &snap.PassID, &ts, &snap.Visible, &snap.Hidden, &snap.Result, &snap.ResultSHA); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return snap, err
		}
		return snap, fmt.Errorf("scan snapshot: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return snap, fmt.Errorf("parse snapshot time: %w", err)
	}
	snap.CreatedAt = t
	return snap, nil
}
