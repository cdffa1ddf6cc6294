package prompt

// Статический блок знаний о кампусе Sanjay Ghodawat University (SGU).
// Вставляется в каждый промт; содержимое фиксировано и не настраивается.
const CampusContext = `## SGU Campus Context

**Sanjay Ghodawat University (SGU)** is a large, modern State Private University spread over **165 acres** on the **Kolhapur-Sangli Highway, Atigre, Kolhapur**. It's part of the diverse Sanjay Ghodawat Group, bringing a strong industrial connection.

**Key Academic Areas & Schools (likely in distinct buildings/blocks):**
* School of Engineering & Technology (housing departments like Aeronautical, Civil, Computer Science & Engineering (CSE), AI & Machine Learning (AI&ML), Electronics & Communication (E&C))
* School of Computer Applications (BCA, MCA)
* School of Commerce & Management (B.Com, BBA, MBA - including specializations like Business Analytics, Disaster Management)
* School of Physical and Chemical Sciences (Physics - including Space Science/Nano Science, Chemistry)
* School of Life Sciences (Medical Lab Technology, Food Science & Technology, Biotechnology)
* School of Pharmaceutical Science (D.Pharm, B.Pharm, M.Pharm)
* School of Design (B.Des covering Fashion, Product, Interior, Communication, Animation, Game Design)
* School of Media (Journalism & Mass Communication)
* School of Social Science (History, Geography, Political Science, English)
* School of Legal Studies (Law) (BA LLB, BBA LLB, LLB)

**Specific Campus Facilities & Landmarks:**
* **Central Library:** A key hub for studying and resources.
* **Hostels:** Separate residential facilities for students.
* **Sports Facilities:** Includes a **Stadium**, **Playgrounds**, courts, and a **Swimming Pool**.
* **Advanced Laboratories:** Sophisticated labs for various science and tech fields.
* **Specialized Centers:** High-End Simulation & Robotic Lab, Industry 4.0 C4i4 Lab, Center for Space and Atmospheric Science (CSAS), TATA Technologies Centre, BOSCH Mechatronics Lab.
* **Auditorium:** For major events, gatherings, and maybe celebrity visits.
* **Food Court / Canteen:** Social spots for meals and breaks.
* **SGU Music Academy:** A dedicated place for musical activities.
* **Star Local Mart:** An on-campus convenience store.
* **Well-Equipped Classrooms & Sophisticated Computer Labs.**
* **Green Spaces:** Gardens and pathways.
* **Parking Areas.**

**Campus Vibe:** Focuses on **Project & Design Based Learning**, strong **Industry Connections** (internships, placements with recruiters like TCS, Infosys, Capgemini, etc.), and aims for overall student development and character building. Has global partnerships (Study Abroad programs with universities in USA, UK, Australia) and hosts events like convocations and potentially fests or celebrity interactions.`

// CampusLocations перечисляет конкретные локации кампуса, которые модель
// должна упоминать в историях. Список используется и в промте, и в тестах
// (проверка, что все локации попали в итоговый промт).
var CampusLocations = []string{
	"Central Library",
	"Food Court",
	"Stadium",
	"Swimming Pool",
	"Star Local Mart",
	"Robotic Lab",
	"SGU Music Academy",
	"Auditorium",
	"Hostels",
}

// ExampleIdeas — примеры идей для пользователя (показываются на странице).
var ExampleIdeas = []string{
	"A student makes an unexpected friend while studying late in the Central Library.",
	"Two rivals from the School of Technology become partners during a project in the Robotic Lab.",
	"A shy musician finds courage to perform at the SGU Music Academy.",
	"A group discussion over snacks at the Food Court sparks a brilliant idea.",
	"Finding something unusual near the Stadium during an evening walk.",
	"A chance encounter at the Star Local Mart.",
}
