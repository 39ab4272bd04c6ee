package migrations

import (
	"database/sql"
	"time"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL DEFAULT '',
		username VARCHAR(50) UNIQUE,
		mobile_no VARCHAR(20) NOT NULL DEFAULT '',
		email VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255)
	);`,
	`CREATE TABLE IF NOT EXISTS discussions (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		text TEXT NOT NULL,
		image VARCHAR(255),
		FOREIGN KEY (user_id) REFERENCES users(id)
	);`,
	`CREATE TABLE IF NOT EXISTS hashtags (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) COLLATE utf8mb4_bin NOT NULL UNIQUE
	);`,
	`CREATE TABLE IF NOT EXISTS discussion_hashtags (
		discussion_id INT NOT NULL,
		hashtag_id INT NOT NULL,
		PRIMARY KEY (discussion_id, hashtag_id),
		FOREIGN KEY (discussion_id) REFERENCES discussions(id),
		FOREIGN KEY (hashtag_id) REFERENCES hashtags(id)
	);`,
}

// AutoMigrate creates the schema if it does not exist. Each statement is
// retried because the database container may still be warming up.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range statements {
		_, err := db.Exec(query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
