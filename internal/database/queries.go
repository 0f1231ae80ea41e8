/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	schema = `
	-- Durable client state, one row per key
	CREATE TABLE IF NOT EXISTS local_state (
		id TEXT PRIMARY KEY,
		state_key TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_local_state_key ON local_state(state_key);
	`

	queryGetValue = `
		SELECT value
		FROM local_state
		WHERE state_key = ?`

	queryUpsertValue = `
		INSERT INTO local_state (id, state_key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(state_key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	queryDeleteValue = `
		DELETE FROM local_state
		WHERE state_key = ?`
)
