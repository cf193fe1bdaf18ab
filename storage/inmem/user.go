package inmemdb

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core/user"
)

var ErrUserNotFound = errors.New("user not found")

func (db *DB) CreateUser(usr user.User) (user.User, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for _, u := range db.users {
		if strings.EqualFold(u.Username, usr.Username) {
			return user.User{}, ErrUsernameTaken
		}
	}
	usr.ID = newID()
	db.users[usr.ID] = &usr
	return usr, nil
}

func (db *DB) GetUser(id string) (user.User, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if usr, ok := db.users[id]; ok {
		return *usr, nil
	}
	return user.User{}, ErrUserNotFound
}

func (db *DB) GetUserByUsername(username string) (user.User, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	for _, usr := range db.users {
		if strings.EqualFold(usr.Username, username) || (usr.Email != "" && strings.EqualFold(usr.Email, username)) {
			return *usr, nil
		}
	}
	return user.User{}, ErrUserNotFound
}
