package http

// ListUsers godoc
// @Summary List users
// @Description Get every user. Passwords are never returned.
// @Tags Users
// @Produce json
// @Success 200 {object} object{msg=string,results=array}
// @Failure 500 {object} object{msg=string}
// @Router /users [get]
func (h *CatalogHandler) ListUsersDoc() {}

// ListPeople godoc
// @Summary List people
// @Tags People
// @Produce json
// @Success 200 {object} object{msg=string,results=array}
// @Failure 500 {object} object{msg=string}
// @Router /people [get]
func (h *CatalogHandler) ListPeopleDoc() {}

// GetPerson godoc
// @Summary Get person by ID
// @Tags People
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} object{msg=string,results=object}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /people/{id} [get]
func (h *CatalogHandler) GetPersonDoc() {}

// ListPlanets godoc
// @Summary List planets
// @Tags Planets
// @Produce json
// @Success 200 {object} object{msg=string,results=array}
// @Failure 500 {object} object{msg=string}
// @Router /planet [get]
func (h *CatalogHandler) ListPlanetsDoc() {}

// GetPlanet godoc
// @Summary Get planet by ID
// @Tags Planets
// @Produce json
// @Param id path int true "Planet ID"
// @Success 200 {object} object{msg=string,results=object}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /planet/{id} [get]
func (h *CatalogHandler) GetPlanetDoc() {}

// ListVehicles godoc
// @Summary List vehicles
// @Tags Vehicles
// @Produce json
// @Success 200 {object} object{msg=string,results=array}
// @Router /vehicles [get]
func (h *CatalogHandler) ListVehiclesDoc() {}

// GetVehicle godoc
// @Summary Get vehicle by ID
// @Tags Vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} object{msg=string,results=object}
// @Failure 400 {object} object{msg=string}
// @Failure 404 {object} object{msg=string}
// @Router /vehicles/{id} [get]
func (h *CatalogHandler) GetVehicleDoc() {}

// ListPilots godoc
// @Summary List the pilots of a vehicle
// @Tags Vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} object{msg=string,results=array}
// @Failure 404 {object} object{msg=string}
// @Router /vehicles/{id}/pilots [get]
func (h *CatalogHandler) ListPilotsDoc() {}
