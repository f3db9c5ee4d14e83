// @title           ambient-prompt API
// @version         1.0
// @description     Turns a seed concept into an ambient-music composition prompt.
// @BasePath        /api
package api
