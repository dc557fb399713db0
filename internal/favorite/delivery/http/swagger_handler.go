package http

// GetUserFavorites godoc
// @Summary List the favorites of a user
// @Tags Favorites
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} object{msg=string,user=object,favorite_people=array,favorite_planets=array,favorite_vehicles=array}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /users/favorites/{user_id} [get]
func (h *FavoriteHandler) GetUserFavoritesDoc() {}

// AddFavoritePlanet godoc
// @Summary Add a planet to a user's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path int true "Planet ID"
// @Param request body object{user_id=int} true "Owner"
// @Success 200 {object} object{msg=string,total_favorites=int,results=object}
// @Failure 400 {object} object{msg=string}
// @Router /favorites/planets/{id} [post]
func (h *FavoriteHandler) AddFavoritePlanetDoc() {}

// AddFavoritePerson godoc
// @Summary Add a person to a user's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path int true "Person ID"
// @Param request body object{user_id=int} true "Owner"
// @Success 200 {object} object{msg=string,total_favorites=int,results=object}
// @Failure 400 {object} object{msg=string}
// @Router /favorites/people/{id} [post]
func (h *FavoriteHandler) AddFavoritePersonDoc() {}

// AddFavoriteVehicle godoc
// @Summary Add a vehicle to a user's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param request body object{user_id=int} true "Owner"
// @Success 200 {object} object{msg=string,total_favorites=int,results=object}
// @Failure 400 {object} object{msg=string}
// @Router /favorites/vehicles/{id} [post]
func (h *FavoriteHandler) AddFavoriteVehicleDoc() {}

// RemoveFavoritePlanet godoc
// @Summary Remove a planet from a user's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path int true "Planet ID"
// @Param request body object{user_id=int} true "Owner"
// @Success 200 {object} object{msg=string}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /favorites/planets/{id} [delete]
func (h *FavoriteHandler) RemoveFavoritePlanetDoc() {}

// RemoveFavoritePerson godoc
// @Summary Remove a person from a user's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path int true "Person ID"
// @Param request body object{user_id=int} true "Owner"
// @Success 200 {object} object{msg=string}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /favorites/people/{id} [delete]
func (h *FavoriteHandler) RemoveFavoritePersonDoc() {}

// RemoveFavoriteVehicle godoc
// @Summary Remove a vehicle from a user's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param request body object{user_id=int} true "Owner"
// @Success 200 {object} object{msg=string}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /favorites/vehicles/{id} [delete]
func (h *FavoriteHandler) RemoveFavoriteVehicleDoc() {}
