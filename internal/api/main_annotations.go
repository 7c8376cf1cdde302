// @title           noticeboard API
// @version         1.0
// @description     Announcement board. Anyone can read; admins post and delete with a bearer token from /login.
// @BasePath        /api
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the token returned by /login.
package api
