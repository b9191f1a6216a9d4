// Package repository gives the triggers typed access to the documents they read and write.
package repository

import "hoteltriggers/database"

// Repositories bundles the typed views over one document store.
type Repositories struct {
	Users  UserRepository
	Hotels HotelRepository
}

func New(store database.DocumentStore) Repositories {
	return Repositories{
		Users:  NewStoreUserRepo(store),
		Hotels: NewStoreHotelRepo(store),
	}
}
