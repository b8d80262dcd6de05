package store

const schema = `
CREATE TABLE IF NOT EXISTS glucose_readings (
	timestamp DATETIME PRIMARY KEY,
	value REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS insulin_readings (
	timestamp DATETIME NOT NULL,
	insulin_type TEXT NOT NULL,
	dose REAL NOT NULL,
	PRIMARY KEY (timestamp, insulin_type)
);

CREATE INDEX IF NOT EXISTS idx_glucose_timestamp ON glucose_readings(timestamp);
CREATE INDEX IF NOT EXISTS idx_insulin_timestamp ON insulin_readings(timestamp);
`
