package store

const (
	userColumns = `user_id, email, name, password_hash, current_mode, alert_active, mode_activated_at,
    push_token, normal_pin_hash, security_pin_hash, phone, phone_verified,
    total_unlocks, normal_unlocks, security_unlocks, failed_attempts, last_unlock, created_at`

	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	getUser = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	savePinHashes = `UPDATE users
    SET normal_pin_hash = $2, security_pin_hash = $3
    WHERE user_id = $1;`

	setMode = `UPDATE users
    SET current_mode = $2, alert_active = $3, mode_activated_at = $4
    WHERE user_id = $1;`

	setPushToken = `UPDATE users
    SET push_token = $2
    WHERE user_id = $1;`

	setVerifiedPhone = `UPDATE users
    SET phone = $2, phone_verified = TRUE
    WHERE user_id = $1;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`

	bumpStatsUnlock = `UPDATE users
    SET total_unlocks = total_unlocks + 1,
        normal_unlocks = normal_unlocks + CASE WHEN $2 = 'normal' THEN 1 ELSE 0 END,
        security_unlocks = security_unlocks + CASE WHEN $2 = 'security' THEN 1 ELSE 0 END,
        last_unlock = $3
    WHERE user_id = $1;`

	bumpStatsFailed = `UPDATE users
    SET failed_attempts = failed_attempts + 1
    WHERE user_id = $1;`

	alertColumns = `id, user_id, type, created_at, status, resolved, resolution_type, resolved_at, details, commands`

	createAlert = `INSERT INTO security_alerts (id, user_id, type, created_at, status, resolved, details, commands)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + alertColumns + `;`

	getAlert = `SELECT ` + alertColumns + `
    FROM security_alerts
    WHERE user_id = $1 AND id = $2;`

	upsertOTPChallenge = `INSERT INTO otp_challenges (user_id, code, phone_number, created_at, expires_at, attempts)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (user_id) DO UPDATE
    SET code = EXCLUDED.code,
        phone_number = EXCLUDED.phone_number,
        created_at = EXCLUDED.created_at,
        expires_at = EXCLUDED.expires_at,
        attempts = EXCLUDED.attempts;`

	getOTPChallenge = `SELECT user_id, code, phone_number, created_at, expires_at, attempts
    FROM otp_challenges
    WHERE user_id = $1;`

	incrementOTPAttempts = `UPDATE otp_challenges
    SET attempts = attempts + 1
    WHERE user_id = $1
    RETURNING attempts;`

	deleteOTPChallenge = `DELETE FROM otp_challenges
    WHERE user_id = $1;`

	appendUnlockEvent = `INSERT INTO unlock_events (user_id, kind, mode, created_at)
    VALUES ($1, $2, $3, $4);`

	listRecentUnlockEvents = `SELECT id, user_id, kind, mode, created_at
    FROM unlock_events
    WHERE user_id = $1
    ORDER BY created_at DESC
    LIMIT $2;`

	deleteProtectedApps = `DELETE FROM protected_apps
    WHERE user_id = $1;`

	insertProtectedApp = `INSERT INTO protected_apps (user_id, package_name, app_name, icon)
    VALUES ($1, $2, $3, $4);`

	listProtectedApps = `SELECT user_id, package_name, app_name, icon
    FROM protected_apps
    WHERE user_id = $1
    ORDER BY app_name;`
)
