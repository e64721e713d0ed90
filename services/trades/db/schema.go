package db

const Schema = `
CREATE TABLE IF NOT EXISTS trade_snapshot (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scraped_at TEXT NOT NULL,
	page INTEGER NOT NULL,
	politician TEXT NOT NULL,
	issuer TEXT NOT NULL,
	ticker TEXT NOT NULL DEFAULT '',
	published_date TEXT NOT NULL DEFAULT '',
	traded_date TEXT NOT NULL DEFAULT '',
	owner TEXT NOT NULL DEFAULT '',
	transaction_type TEXT NOT NULL DEFAULT '',
	amount_range TEXT NOT NULL DEFAULT '',
	reported_price TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL
);
`
