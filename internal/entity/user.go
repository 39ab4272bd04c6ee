package entity

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	MobileNo string `json:"mobile_no"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

/*
Mysql Schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL DEFAULT '',
	username VARCHAR(50) UNIQUE,
	mobile_no VARCHAR(20) NOT NULL DEFAULT '',
	email VARCHAR(100) NOT NULL UNIQUE,
	password VARCHAR(255)
);

The CRUD endpoints only touch name, mobile_no and email. The auth
endpoints additionally fill username and the bcrypt password hash.
*/
