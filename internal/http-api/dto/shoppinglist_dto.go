package dto

// CreateShoppingListRequest for creating a shopping list
type CreateShoppingListRequest struct {
	Title string `json:"title" binding:"required,min=1,max=50"`
}

// UpdateShoppingListRequest for renaming a shopping list
type UpdateShoppingListRequest struct {
	Title string `json:"title" binding:"required,min=1,max=50"`
}

// AddShoppingListItemRequest for appending an item
type AddShoppingListItemRequest struct {
	Title string `json:"title" binding:"required,min=1,max=50"`
}

// UpdateShoppingListItemRequest for renaming or checking off an item.
// Pointers so either field may be omitted.
type UpdateShoppingListItemRequest struct {
	Title *string `json:"title,omitempty" binding:"omitempty,min=1,max=50"`
	Done  *bool   `json:"done,omitempty"`
}
