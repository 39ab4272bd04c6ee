package entity

type Discussion struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Text     string    `json:"text"`
	Image    string    `json:"image,omitempty"`
	Hashtags []Hashtag `json:"hashtags,omitempty"`
}

type Hashtag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

/*
Mysql Schema:

CREATE TABLE discussions (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	text TEXT NOT NULL,
	image VARCHAR(255),
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE hashtags (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) COLLATE utf8mb4_bin NOT NULL UNIQUE
);

CREATE TABLE discussion_hashtags (
	discussion_id INT NOT NULL,
	hashtag_id INT NOT NULL,
	PRIMARY KEY (discussion_id, hashtag_id),
	FOREIGN KEY (discussion_id) REFERENCES discussions(id),
	FOREIGN KEY (hashtag_id) REFERENCES hashtags(id)
);

Hashtags are shared between discussions and never deleted; the link
rows in discussion_hashtags are owned by their discussion.
*/
