// Package service provides typed operations over the mitaina API.
//
// Services validate input locally, build the request path and decode
// the response. Transport concerns (token header, 401 handling) live
// in the API client; the services only see its Call method.
//
//   - AuthService: login, logout, registration, password reset
//   - PostService: list, get, create, delete, react, report
//   - UserService: profiles, their posts, follows and reactions
//   - MeService: the owner's profile, reactions and notifications
//   - FeedService: posts from followed users
package service
