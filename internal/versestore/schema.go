package versestore

const schemaDDL = `
CREATE TABLE IF NOT EXISTS daily_verse (
	id          INTEGER PRIMARY KEY,
	month       INTEGER NOT NULL,
	day         INTEGER NOT NULL,
	book_key    TEXT    NOT NULL,
	chapter     INTEGER NOT NULL,
	start_verse INTEGER NOT NULL,
	end_verse   INTEGER
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_verse_month_day ON daily_verse (month, day);

CREATE TABLE IF NOT EXISTS verse_text (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	daily_id     INTEGER NOT NULL,
	version_code TEXT    NOT NULL,
	book_name    TEXT    NOT NULL,
	content      TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_verse_text_daily_version ON verse_text (daily_id, version_code);
`

// Lookups read texts from a subquery so an attached secondary file can be
// folded in without touching the join.
const primaryTexts = `SELECT daily_id, version_code, book_name, content FROM main.verse_text`

const combinedTexts = primaryTexts + `
		UNION ALL
		SELECT daily_id, version_code, book_name, content FROM secondary.verse_text`

const verseColumns = `dv.id, dv.month, dv.day, dv.book_key, dv.chapter, dv.start_verse, dv.end_verse, vt.book_name, vt.content, vt.version_code`

func lookupQuery(attached bool) string {
	texts := primaryTexts
	if attached {
		texts = combinedTexts
	}
	return `
		SELECT ` + verseColumns + `
		FROM main.daily_verse dv
		JOIN (` + texts + `) vt ON dv.id = vt.daily_id
		WHERE dv.month = ? AND dv.day = ? AND vt.version_code = ?
		LIMIT 1`
}

func lookupByIDQuery(attached bool) string {
	texts := primaryTexts
	if attached {
		texts = combinedTexts
	}
	return `
		SELECT ` + verseColumns + `
		FROM main.daily_verse dv
		JOIN (` + texts + `) vt ON dv.id = vt.daily_id
		WHERE dv.id = ? AND vt.version_code = ?
		LIMIT 1`
}

func translationsQuery(attached bool) string {
	texts := primaryTexts
	if attached {
		texts = combinedTexts
	}
	return `SELECT DISTINCT version_code FROM (` + texts + `) ORDER BY version_code`
}

func coveredSlotsQuery(attached bool) string {
	texts := primaryTexts
	if attached {
		texts = combinedTexts
	}
	return `
		SELECT DISTINCT dv.month, dv.day
		FROM main.daily_verse dv
		JOIN (` + texts + `) vt ON dv.id = vt.daily_id
		WHERE vt.version_code = ?`
}
