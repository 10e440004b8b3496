package users

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AccessDTO struct {
	Tier         string   `json:"tier"` // free|core|edge
	Entitlements []string `json:"entitlements"`
	Overridden   bool     `json:"overridden"` // explicit grant list in effect
}
