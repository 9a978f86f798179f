// Package classify maps file names to stack categories.
//
// A category is the name of the folder a file is stacked into. Audio, video
// and image files always go to the localized Music, Videos and Pictures
// folders; other files go to a folder named after the default application
// for their MIME type, or to the Others folder when nothing matches.
// Classification never fails.
package classify
