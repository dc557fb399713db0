package main

// @title Star Wars Favorites API
// @version 1.0
// @description Catalog of people, planets and vehicles with per-user favorites.

// @host localhost:3000
// @BasePath /

// @tag.name Users
// @tag.description Registered users

// @tag.name People
// @tag.description Characters and their home planets

// @tag.name Planets
// @tag.description Planets

// @tag.name Vehicles
// @tag.description Vehicles and their pilots

// @tag.name Favorites
// @tag.description Per-user favorite planets, people and vehicles

// @tag.name Health
// @tag.description Health check and route listing
